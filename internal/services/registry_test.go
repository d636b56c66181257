package services_test

import (
	"context"
	"errors"
	"testing"

	"ledgerbook/internal/core"
	"ledgerbook/internal/services"
	"ledgerbook/internal/services/mocks"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRegistry_Add(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("valid client is persisted and gets an id", func(t *testing.T) {
		store := mocks.NewMockClientStore(ctrl)
		client := core.Client{Name: "Alice Smith", PhoneNumber: "123-456-7890", Email: "alice@example.com", Notes: "Regular client"}
		store.EXPECT().CreateClient(gomock.Any(), client).Return(int64(7), nil)

		registry := services.NewClientRegistry(store)
		id, err := registry.Add(context.Background(), client)
		require.NoError(t, err)
		assert.Equal(t, int64(7), id)
	})

	t.Run("malformed input never reaches the store", func(t *testing.T) {
		store := mocks.NewMockClientStore(ctrl)
		registry := services.NewClientRegistry(store)

		bads := []core.Client{
			{Name: "", Email: "alice@example.com"},
			{Name: "Alice", Email: "alice@nodot"},
		}
		for _, c := range bads {
			_, err := registry.Add(context.Background(), c)
			require.Error(t, err)
			assert.True(t, core.IsValidation(err))
		}
	})
}

func TestClientRegistry_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("overwrites mutable fields", func(t *testing.T) {
		store := mocks.NewMockClientStore(ctrl)
		client := core.Client{ID: 3, Name: "Alice Johnson", Email: "alicej@example.com"}
		store.EXPECT().UpdateClient(gomock.Any(), client).Return(nil)

		registry := services.NewClientRegistry(store)
		require.NoError(t, registry.Update(context.Background(), client))
	})

	t.Run("unset id is a validation error", func(t *testing.T) {
		store := mocks.NewMockClientStore(ctrl)
		registry := services.NewClientRegistry(store)

		err := registry.Update(context.Background(), core.Client{Name: "Alice", Email: "alice@example.com"})
		require.Error(t, err)
		assert.True(t, core.IsValidation(err))
	})

	t.Run("unknown id is a validation error, not an upsert", func(t *testing.T) {
		store := mocks.NewMockClientStore(ctrl)
		client := core.Client{ID: 99, Name: "Ghost", Email: "ghost@example.com"}
		store.EXPECT().UpdateClient(gomock.Any(), client).Return(core.ErrNotFound)

		registry := services.NewClientRegistry(store)
		err := registry.Update(context.Background(), client)
		require.Error(t, err)
		assert.True(t, core.IsValidation(err))
	})
}

func TestClientRegistry_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	t.Run("refused while transactions reference the client", func(t *testing.T) {
		store := mocks.NewMockClientStore(ctrl)
		store.EXPECT().CountClientTransactions(gomock.Any(), int64(1)).Return(int64(2), nil)
		// No DeleteClient expectation: the refusal happens first.

		registry := services.NewClientRegistry(store)
		err := registry.Delete(context.Background(), 1)
		require.Error(t, err)
		assert.True(t, core.IsConstraint(err))
	})

	t.Run("succeeds when no transactions reference the client", func(t *testing.T) {
		store := mocks.NewMockClientStore(ctrl)
		store.EXPECT().CountClientTransactions(gomock.Any(), int64(1)).Return(int64(0), nil)
		store.EXPECT().DeleteClient(gomock.Any(), int64(1)).Return(nil)

		registry := services.NewClientRegistry(store)
		require.NoError(t, registry.Delete(context.Background(), 1))
	})

	t.Run("store failure during the dependency check propagates", func(t *testing.T) {
		store := mocks.NewMockClientStore(ctrl)
		store.EXPECT().CountClientTransactions(gomock.Any(), int64(1)).
			Return(int64(0), &core.StoreError{Op: "count client transactions", Err: errors.New("database is locked")})

		registry := services.NewClientRegistry(store)
		err := registry.Delete(context.Background(), 1)
		require.Error(t, err)
		assert.True(t, core.IsStore(err))
	})
}

func TestClientRegistry_HasDependentTransactions(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := mocks.NewMockClientStore(ctrl)
	store.EXPECT().CountClientTransactions(gomock.Any(), int64(1)).Return(int64(3), nil)
	store.EXPECT().CountClientTransactions(gomock.Any(), int64(2)).Return(int64(0), nil)

	registry := services.NewClientRegistry(store)

	has, err := registry.HasDependentTransactions(context.Background(), 1)
	require.NoError(t, err)
	assert.True(t, has)

	has, err = registry.HasDependentTransactions(context.Background(), 2)
	require.NoError(t, err)
	assert.False(t, has)
}
