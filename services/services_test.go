package services

import (
	"context"
	"fmt"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hotel-manager/config"
	"hotel-manager/models"
	"hotel-manager/repository"
	"hotel-manager/services/booking"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := config.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()), nil)
	require.NoError(t, err)
	require.NoError(t, config.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestEngine(db *gorm.DB, today string) *booking.Engine {
	return booking.NewEngine(booking.EngineOptions{
		Repo:  repository.NewGormRepository(db),
		Clock: booking.FixedClock{T: date(today).Add(10 * time.Hour)},
	})
}

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

type fixtures struct {
	client models.Client
	single models.Room
	suite  models.Room
}

func seedHotel(t *testing.T, db *gorm.DB) fixtures {
	t.Helper()
	f := fixtures{
		client: models.Client{Name: "João Silva", Email: "joao@example.com", Phone: "+55 11 98888-7777", Document: "12345678900"},
		single: models.Room{Number: "101", Category: models.RoomCategorySingle, NightlyRate: 150, Active: true},
		suite:  models.Room{Number: "301", Category: models.RoomCategorySuite, NightlyRate: 400, Active: true},
	}
	require.NoError(t, db.Create(&f.client).Error)
	require.NoError(t, db.Create(&f.single).Error)
	require.NoError(t, db.Create(&f.suite).Error)
	return f
}

func reserve(t *testing.T, db *gorm.DB, clientID, roomID uint, in, out string, status models.ReservationStatus) models.Reservation {
	t.Helper()
	res := models.Reservation{
		ClientID:   clientID,
		RoomID:     roomID,
		CheckIn:    date(in),
		CheckOut:   date(out),
		TotalPrice: 100,
		Status:     status,
	}
	require.NoError(t, db.Create(&res).Error)
	return res
}

type fakeNotifier struct {
	mu       sync.Mutex
	messages []string
	err      error
}

func (n *fakeNotifier) SendMessage(message string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.messages = append(n.messages, message)
	return n.err
}

func (n *fakeNotifier) sent() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.messages...)
}

type fakeUploader struct {
	publicID string
	body     string
	err      error
}

func (u *fakeUploader) Upload(ctx context.Context, file io.Reader, publicID string) (string, error) {
	if u.err != nil {
		return "", u.err
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	u.publicID = publicID
	u.body = string(data)
	return "https://cdn.example.com/" + publicID + ".jpg", nil
}

func newTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return rdb, mr
}
