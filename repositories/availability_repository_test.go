package repositories_test

import (
	"sync"
	"testing"
	"time"

	"catering-shop/repositories"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const orderLimit = 2

type availabilityRepositorySuite struct {
	suite.Suite

	repo *repositories.AvailabilityRepository
	pool *pgxpool.Pool
}

// entry point to run the tests in the suite
func TestAvailabilityRepositorySuite(t *testing.T) {
	suite.Run(t, new(availabilityRepositorySuite))
}

// before all tests in the suite
func (suite *availabilityRepositorySuite) SetupSuite() {
	ctx := suite.T().Context()

	_, connStr, err := startPostgres(ctx)
	suite.NoError(err)

	suite.pool, err = pgxpool.New(ctx, connStr)
	suite.NoError(err)

	suite.repo = repositories.NewAvailabilityRepository(suite.pool, orderLimit)
}

// after all tests in the suite
func (suite *availabilityRepositorySuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *availabilityRepositorySuite) deleteAll() {
	_, err := suite.pool.Exec(suite.T().Context(), "TRUNCATE TABLE daily_orders")
	suite.NoError(err)
}

func randomDate() string {
	start := time.Now().AddDate(1, 0, 0)
	return gofakeit.DateRange(start, start.AddDate(1, 0, 0)).Format("2006-01-02")
}

func (suite *availabilityRepositorySuite) TestCountForAbsentDate() {
	defer suite.deleteAll()
	t := suite.T()

	count, err := suite.repo.CountFor(t.Context(), "2031-06-15")
	require.NoError(t, err)
	require.Equal(t, 0, count)
}

func (suite *availabilityRepositorySuite) TestCountForRejectsBadDate() {
	t := suite.T()

	_, err := suite.repo.CountFor(t.Context(), "not-a-date")
	require.Error(t, err)
}

func (suite *availabilityRepositorySuite) TestIncrementDate() {
	defer suite.deleteAll()
	t := suite.T()
	ctx := t.Context()
	date := "2031-06-15"

	// First increment creates the record at 1.
	count, err := suite.repo.IncrementDate(ctx, date)
	require.NoError(t, err)
	require.Equal(t, 1, count)

	// Second increment bumps the existing record.
	count, err = suite.repo.IncrementDate(ctx, date)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	count, err = suite.repo.CountFor(ctx, date)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func (suite *availabilityRepositorySuite) TestIncrementDateConcurrent() {
	defer suite.deleteAll()
	t := suite.T()
	ctx := t.Context()
	date := "2031-07-01"

	// Concurrent submitters must never lose an increment.
	const writers = 10
	var wg sync.WaitGroup
	errs := make(chan error, writers)

	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := suite.repo.IncrementDate(ctx, date)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	count, err := suite.repo.CountFor(ctx, date)
	require.NoError(t, err)
	require.Equal(t, writers, count)
}

func (suite *availabilityRepositorySuite) TestBlockedDates() {
	defer suite.deleteAll()
	t := suite.T()
	ctx := t.Context()

	fullDate := randomDate()
	openDate := randomDate()
	for openDate == fullDate {
		openDate = randomDate()
	}

	for range orderLimit {
		_, err := suite.repo.IncrementDate(ctx, fullDate)
		require.NoError(t, err)
	}
	_, err := suite.repo.IncrementDate(ctx, openDate)
	require.NoError(t, err)

	blocked, err := suite.repo.BlockedDates(ctx)
	require.NoError(t, err)

	require.Contains(t, blocked, fullDate)
	require.NotContains(t, blocked, openDate)
}

func (suite *availabilityRepositorySuite) TestBlockedDatesEmpty() {
	defer suite.deleteAll()
	t := suite.T()

	blocked, err := suite.repo.BlockedDates(t.Context())
	require.NoError(t, err)
	require.Empty(t, blocked)
}
