package repository_test

import (
	"log/slog"
	"regexp"
	"testing"

	"github.com/fieldscout/meridian/internal/enginerr"
	"github.com/fieldscout/meridian/internal/models"
	"github.com/fieldscout/meridian/internal/repository"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listProvidersQuery = `
	SELECT
		p.id, p.type, p.name,
		COALESCE(p.contact_email, ''), COALESCE(p.contact_phone, ''),
		p.address, p.postcode, p.country,
		p.latitude, p.longitude,
		p.rating, COALESCE(p.price_range, ''),
		COALESCE(array_agg(ps.specialty_id) FILTER (WHERE ps.specialty_id IS NOT NULL), '{}')
	FROM providers p
	LEFT JOIN provider_specialties ps ON ps.provider_id = p.id
	WHERE
		p.active = true
		AND p.type = $1
		AND (
			cardinality($2::text[]) = 0
			OR EXISTS (
				SELECT 1 FROM provider_specialties f
				WHERE f.provider_id = p.id AND f.specialty_id = ANY($2::text[])
			)
		)
	GROUP BY p.id
	ORDER BY p.id ASC;
`

var providerColumns = []string{
	"id", "type", "name",
	"contact_email", "contact_phone",
	"address", "postcode", "country",
	"latitude", "longitude",
	"rating", "price_range",
	"specialty_ids",
}

func TestListActiveProviders(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	rating := 4.5

	t.Run("error - query providers", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(listProvidersQuery)).
			WithArgs("inspector", []string{}).
			WillReturnError(assert.AnError)

		providers, err := repo.ListActiveProviders(ctx, models.ServiceTypeInspector, nil)

		require.Nil(t, providers)
		require.Error(t, err)
		require.ErrorContains(t, err, "failed to query active providers")
		require.ErrorIs(t, err, enginerr.ErrCatalogUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - scan provider row", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(listProvidersQuery)).
			WithArgs("inspector", []string{}).
			WillReturnRows(
				pgxmock.NewRows(providerColumns).AddRow(
					"prov-1", "inspector", "Aberdeen Inspections",
					"a@example.com", "+44 1224 000000",
					"1 Union St", "AB1 2CD", "GB",
					"not-a-float", -2.0943,
					&rating, "$$",
					[]string{"grain"},
				),
			)

		providers, err := repo.ListActiveProviders(ctx, models.ServiceTypeInspector, nil)

		require.Nil(t, providers)
		require.Error(t, err)
		require.ErrorContains(t, err, "failed to scan provider row")
		require.ErrorIs(t, err, enginerr.ErrCatalogUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("error - rows error", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(listProvidersQuery)).
			WithArgs("inspector", []string{}).
			WillReturnRows(
				pgxmock.NewRows(providerColumns).AddRow(
					"prov-1", "inspector", "Aberdeen Inspections",
					"a@example.com", "+44 1224 000000",
					"1 Union St", "AB1 2CD", "GB",
					57.1497, -2.0943,
					&rating, "$$",
					[]string{"grain"},
				).RowError(1, assert.AnError),
			)

		providers, err := repo.ListActiveProviders(ctx, models.ServiceTypeInspector, nil)

		require.Nil(t, providers)
		require.Error(t, err)
		require.ErrorContains(t, err, "failed to read provider rows")
		require.ErrorIs(t, err, enginerr.ErrCatalogUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - providers with and without rating", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(listProvidersQuery)).
			WithArgs("haulier", []string{"grain"}).
			WillReturnRows(
				pgxmock.NewRows(providerColumns).
					AddRow(
						"prov-1", "haulier", "Grampian Haulage",
						"ops@example.com", "+44 1224 111111",
						"2 King St", "AB2 3EF", "GB",
						57.1497, -2.0943,
						&rating, "$$",
						[]string{"grain", "livestock"},
					).
					AddRow(
						"prov-2", "haulier", "Deeside Transport",
						"", "",
						"3 Queen St", "AB3 4GH", "GB",
						57.2000, -2.1000,
						nil, "",
						[]string{"grain"},
					),
			)

		providers, err := repo.ListActiveProviders(ctx, models.ServiceTypeHaulier, []string{"grain"})

		require.NoError(t, err)
		require.Len(t, providers, 2)

		first := providers[0]
		assert.Equal(t, "prov-1", first.ID)
		assert.Equal(t, models.ServiceTypeHaulier, first.Type)
		assert.Equal(t, "Grampian Haulage", first.Name)
		assert.InEpsilon(t, 57.1497, first.Coordinates.Latitude, 0.0001)
		require.NotNil(t, first.Rating)
		assert.InEpsilon(t, rating, *first.Rating, 0.0001)
		assert.Equal(t, []string{"grain", "livestock"}, first.SpecialtyIDs)
		assert.True(t, first.Active)

		second := providers[1]
		assert.Equal(t, "prov-2", second.ID)
		assert.Nil(t, second.Rating)
		assert.True(t, second.Active)

		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCountByType(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	query := `
		SELECT COUNT(*)
		FROM providers
		WHERE active = true AND type = $1;
	`

	t.Run("error - count providers", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs("inspector").
			WillReturnError(assert.AnError)

		count, err := repo.CountByType(ctx, models.ServiceTypeInspector)

		require.Zero(t, count)
		require.Error(t, err)
		require.ErrorContains(t, err, "failed to count providers by type")
		require.ErrorIs(t, err, enginerr.ErrCatalogUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - count providers", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs("haulier").
			WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(7))

		count, err := repo.CountByType(ctx, models.ServiceTypeHaulier)

		require.NoError(t, err)
		assert.Equal(t, 7, count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestListSpecialties(t *testing.T) {
	t.Parallel()
	logger := slog.Default()
	ctx := t.Context()
	query := `
		SELECT id, name
		FROM specialties
		WHERE service_type = $1
		ORDER BY name ASC;
	`

	t.Run("error - query specialties", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs("inspector").
			WillReturnError(assert.AnError)

		specialties, err := repo.ListSpecialties(ctx, models.ServiceTypeInspector)

		require.Nil(t, specialties)
		require.Error(t, err)
		require.ErrorContains(t, err, "failed to query specialties")
		require.ErrorIs(t, err, enginerr.ErrCatalogUnavailable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("success - list specialties", func(t *testing.T) {
		t.Parallel()
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		repo := repository.NewRepository(mock, logger)

		mock.ExpectQuery(regexp.QuoteMeta(query)).
			WithArgs("inspector").
			WillReturnRows(
				pgxmock.NewRows([]string{"id", "name"}).
					AddRow("brand-fendt", "Fendt").
					AddRow("brand-john-deere", "John Deere"),
			)

		specialties, err := repo.ListSpecialties(ctx, models.ServiceTypeInspector)

		require.NoError(t, err)
		require.Len(t, specialties, 2)
		assert.Equal(t, models.Specialty{ID: "brand-fendt", Name: "Fendt"}, specialties[0])
		assert.Equal(t, models.Specialty{ID: "brand-john-deere", Name: "John Deere"}, specialties[1])
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
