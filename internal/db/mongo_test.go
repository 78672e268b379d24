package db

import (
	"context"
	"testing"
	"time"

	"github.com/rogerio-castellano/product-catalog/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestHandleStartsNotReady(t *testing.T) {
	h := NewHandle()

	coll, ok := h.Collection()
	assert.False(t, ok)
	assert.Nil(t, coll)
	assert.False(t, h.Ready())
	assert.NoError(t, h.Close(context.Background()))
}

func TestHandleSet(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("ready after set", func(mt *mtest.T) {
		h := NewHandle()
		require.NoError(mt, h.Set(mt.Client, mt.Coll))

		coll, ok := h.Collection()
		require.True(mt, ok)
		assert.Same(mt, mt.Coll, coll)
		assert.True(mt, h.Ready())
	})
}

func TestHandleRefusesSetAfterClose(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("late connection is not published", func(mt *mtest.T) {
		h := NewHandle()
		require.NoError(mt, h.Close(context.Background()))

		err := h.Set(mt.Client, mt.Coll)
		assert.ErrorIs(mt, err, ErrHandleClosed)
		assert.False(mt, h.Ready())
		coll, ok := h.Collection()
		assert.False(mt, ok)
		assert.Nil(mt, coll)
	})
}

func TestConnectRejectsEmptyURI(t *testing.T) {
	_, err := Connect(context.Background(), config.MongoConfig{ConnectTimeout: time.Second})
	require.Error(t, err)
}

func TestOpenLeavesHandleEmptyOnFailure(t *testing.T) {
	h := NewHandle()
	err := Open(context.Background(), config.MongoConfig{
		URI:            "mongodb://127.0.0.1:1/?serverSelectionTimeoutMS=50&connectTimeoutMS=50",
		Database:       "product_db",
		Collection:     "products",
		ConnectTimeout: 200 * time.Millisecond,
	}, h)

	require.Error(t, err)
	assert.False(t, h.Ready())
}
