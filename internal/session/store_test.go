package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"feasibility-workers/internal/models"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestStore_SaveAndLoad(t *testing.T) {
	mr, client := setupRedis(t)
	store := NewStore(client, time.Hour)
	ctx := context.Background()

	set := models.NewAnswerSet()
	set.BusinessName = "Atelier Vélo"
	set.AverageBasket = 40
	set.CustomersPerMonth = 50

	require.NoError(t, store.Save(ctx, "s1", set, "client@example.com"))

	assert.True(t, mr.Exists("feasibility:s1:formData"))
	assert.Equal(t, time.Hour, mr.TTL("feasibility:s1:formData"))
	email, err := mr.Get("feasibility:s1:userEmail")
	require.NoError(t, err)
	assert.Equal(t, "client@example.com", email)

	loaded, gotEmail, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "client@example.com", gotEmail)
	assert.Equal(t, "Atelier Vélo", loaded.BusinessName)
	assert.Equal(t, float64(2000), loaded.RevenueToUse)
}

func TestStore_LoadMissing(t *testing.T) {
	_, client := setupRedis(t)
	store := NewStore(client, 0)

	_, _, err := store.Load(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_EmptySessionID(t *testing.T) {
	store := NewStore(nil, 0)

	assert.ErrorIs(t, store.Save(context.Background(), "", models.NewAnswerSet(), ""), ErrInvalidSession)
	_, _, err := store.Load(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestStore_Expires(t *testing.T) {
	mr, client := setupRedis(t)
	store := NewStore(client, time.Minute)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s2", models.NewAnswerSet(), ""))
	mr.FastForward(2 * time.Minute)

	_, _, err := store.Load(ctx, "s2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStore_LoadRedisError(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewStore(client, time.Minute)

	mock.ExpectGet(FormDataKey("s3")).SetErr(errors.New("connection refused"))

	_, _, err := store.Load(context.Background(), "s3")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_LoadWithoutEmail(t *testing.T) {
	client, mock := redismock.NewClientMock()
	store := NewStore(client, time.Minute)

	mock.ExpectGet(FormDataKey("s4")).SetVal(`{"businessName":"Solo"}`)
	mock.ExpectGet(UserEmailKey("s4")).RedisNil()

	set, email, err := store.Load(context.Background(), "s4")
	require.NoError(t, err)
	assert.Equal(t, "", email)
	assert.Equal(t, "Solo", set.BusinessName)
	assert.Equal(t, float64(50), set.ProductionPercentage)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDecodeAnswerSet_Legacy(t *testing.T) {
	set, err := DecodeAnswerSet([]byte(`{
		"businessName": "Ancien Projet",
		"businessType": "Traiteur",
		"hasTeam": "solo",
		"monthlyRevenue": 3000,
		"initialInvestment": 8000
	}`))

	require.NoError(t, err)
	assert.Equal(t, "Ancien Projet", set.BusinessName)
	assert.Equal(t, "Traiteur", set.WhatYouSell)
	assert.Equal(t, models.BusinessTypeUnset, set.BusinessType)
	assert.True(t, set.WorkingAlone)
	assert.Equal(t, float64(8000), set.PersonalContribution)
}

func TestDecodeAnswerSet_CapsMonthSets(t *testing.T) {
	set, err := DecodeAnswerSet([]byte(`{"isSeasonal":true,"highMonths":["Mai","Juin","Juillet","Août","Septembre"],"lowMonths":["Janvier","Février","Mars","Avril","Novembre"]}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"Mai", "Juin", "Juillet"}, set.HighMonths)
	assert.Equal(t, []string{"Janvier", "Février", "Mars"}, set.LowMonths)
}

func TestDecodeAnswerSet_Invalid(t *testing.T) {
	_, err := DecodeAnswerSet([]byte(`[1,2]`))
	assert.Error(t, err)

	_, err = DecodeAnswerSet([]byte(`{"customersPerMonth": "many"}`))
	assert.Error(t, err)
}
