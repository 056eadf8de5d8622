package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mazadksa/mazad/pkg/repository"
)

func newMockUoW(t *testing.T) (*UoW, sqlmock.Sqlmock) {
	t.Helper()
	mockDb, mock, err := sqlmock.New()
	require.NoError(t, err)
	dialector := postgres.New(postgres.Config{
		Conn:       mockDb,
		DriverName: "postgres",
	})
	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return NewUoW(db), mock
}

func TestUoW_TypedAccessors(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)
	uow, mock := newMockUoW(t)

	// Accessors work outside a transaction, bound to the base session.
	userRepo, err := uow.UserRepository()
	require.NoError(err)
	assert.NotNil(userRepo)

	auctionRepo, err := uow.AuctionRepository()
	require.NoError(err)
	assert.NotNil(auctionRepo)

	bidRepo, err := uow.BidRepository()
	require.NoError(err)
	assert.NotNil(bidRepo)

	rewardRepo, err := uow.RewardRepository()
	require.NoError(err)
	assert.NotNil(rewardRepo)

	notificationRepo, err := uow.NotificationRepository()
	require.NoError(err)
	assert.NotNil(notificationRepo)

	paymentRepo, err := uow.PaymentRepository()
	require.NoError(err)
	assert.NotNil(paymentRepo)

	engagementRepo, err := uow.EngagementRepository()
	require.NoError(err)
	assert.NotNil(engagementRepo)

	recommendationRepo, err := uow.RecommendationRepository()
	require.NoError(err)
	assert.NotNil(recommendationRepo)

	// Inside a Do block the accessors are bound to the transaction.
	mock.ExpectBegin()
	mock.ExpectCommit()

	err = uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		userRepo, err := txUow.UserRepository()
		require.NoError(err)
		assert.NotNil(userRepo)

		auctionRepo, err := txUow.AuctionRepository()
		require.NoError(err)
		assert.NotNil(auctionRepo)

		return nil
	})
	assert.NoError(err)
	assert.NoError(mock.ExpectationsWereMet())
}

func TestUoW_DoCommitsOnSuccess(t *testing.T) {
	uow, mock := newMockUoW(t)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		return nil
	})
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUoW_DoRollsBackOnError(t *testing.T) {
	uow, mock := newMockUoW(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	wantErr := errors.New("boom")
	err := uow.Do(context.Background(), func(txUow repository.UnitOfWork) error {
		return wantErr
	})
	assert.ErrorIs(t, err, wantErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}
