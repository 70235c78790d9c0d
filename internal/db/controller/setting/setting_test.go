package setting

import (
	"regexp"
	"sync"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/growfastwithus/growfast/internal/db/controller"
	"github.com/growfastwithus/growfast/internal/db/controller/testutil"
	"github.com/growfastwithus/growfast/internal/db/models"
)

func TestGet(t *testing.T) {
	db := testutil.OpenDB(t)

	_, err := Upsert(db, models.SiteSetting{Key: "hero_title", Value: "Automate your business", Category: "hero"})
	require.NoError(t, err)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		key           string
		expectedError error
		expectedValue string
	}{
		{name: "nil database", dbParam: nil, key: "hero_title", expectedError: controller.ErrDBNil},
		{name: "empty key", dbParam: db, key: "", expectedError: ErrSettingKeyEmpty},
		{name: "setting not found", dbParam: db, key: "nonexistent", expectedError: ErrSettingNotFound},
		{name: "successful get", dbParam: db, key: "hero_title", expectedValue: "Automate your business"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			s, err := Get(tc.dbParam, tc.key)

			if tc.expectedError != nil {
				require.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, s)

				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.key, s.Key)
			assert.Equal(t, tc.expectedValue, s.Value)
			assert.Equal(t, "hero", s.Category)
			assert.Equal(t, models.SettingTypeText, s.Type)
		})
	}
}

func TestUpsertTwiceKeepsOneRow(t *testing.T) {
	db := testutil.OpenDB(t)

	first, err := Upsert(db, models.SiteSetting{Key: "primary_color", Value: "#2563eb", Type: models.SettingTypeColor, Category: models.SettingCategoryTheme})
	require.NoError(t, err)
	assert.NotZero(t, first.ID)

	second, err := Upsert(db, models.SiteSetting{Key: "primary_color", Value: "#16a34a"})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "#16a34a", second.Value)

	// type and category were not supplied and must survive
	assert.Equal(t, models.SettingTypeColor, second.Type)
	assert.Equal(t, models.SettingCategoryTheme, second.Category)

	var count int64
	require.NoError(t, db.Model(&models.SiteSetting{}).Where("setting_key = ?", "primary_color").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	stored, err := Get(db, "primary_color")
	require.NoError(t, err)
	assert.Equal(t, "#16a34a", stored.Value)
}

func TestUpsertConcurrent(t *testing.T) {
	db := testutil.OpenDB(t)

	var wg sync.WaitGroup

	for i := range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			_, err := Set(db, "hero_subtitle", string(rune('a'+i)))
			assert.NoError(t, err)
		}()
	}

	wg.Wait()

	var count int64
	require.NoError(t, db.Model(&models.SiteSetting{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestUpsertValidation(t *testing.T) {
	db := testutil.OpenDB(t)

	_, err := Upsert(nil, models.SiteSetting{Key: "a"})
	require.ErrorIs(t, err, controller.ErrDBNil)

	_, err = Upsert(db, models.SiteSetting{Key: "   "})
	require.ErrorIs(t, err, ErrSettingKeyEmpty)

	_, err = Upsert(db, models.SiteSetting{Key: "a", Type: "binary"})
	require.ErrorIs(t, err, ErrSettingTypeInvalid)
}

func TestGetAllAndValues(t *testing.T) {
	db := testutil.OpenDB(t)

	_, err := UpsertMany(db, []models.SiteSetting{
		{Key: "primary_color", Value: "#2563eb", Type: models.SettingTypeColor, Category: models.SettingCategoryTheme},
		{Key: "hero_title", Value: "Grow fast", Category: "hero"},
		{Key: "accent_color", Value: "#f59e0b", Type: models.SettingTypeColor, Category: models.SettingCategoryTheme},
	})
	require.NoError(t, err)

	theme, err := GetAll(db, models.SettingCategoryTheme)
	require.NoError(t, err)
	require.Len(t, theme, 2)
	assert.Equal(t, "accent_color", theme[0].Key)

	all, err := GetAll(db, "")
	require.NoError(t, err)
	assert.Len(t, all, 3)

	values, err := Values(db)
	require.NoError(t, err)
	assert.Equal(t, "Grow fast", values["hero_title"])

	_, err = GetAll(nil, "")
	require.ErrorIs(t, err, controller.ErrDBNil)
}

func TestUpsertIsSingleStatement(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	defer func() { _ = sqlDB.Close() }()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "setting_key", "value", "type", "category", "created_at", "updated_at"}).
		AddRow(7, "hero_title", "Grow fast", "text", "general", now, now)

	mock.ExpectQuery(`INSERT INTO "site_settings" .* ON CONFLICT \("setting_key"\) DO UPDATE SET .*RETURNING \*`).
		WillReturnRows(rows)

	s, err := Upsert(db, models.SiteSetting{Key: "hero_title", Value: "Grow fast"})
	require.NoError(t, err)
	assert.Equal(t, uint64(7), s.ID)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertQueryShape(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	defer func() { _ = sqlDB.Close() }()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta(`DO UPDATE SET "value"="excluded"."value","updated_at"="excluded"."updated_at","type"="excluded"."type"`)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))

	_, err = Upsert(db, models.SiteSetting{Key: "primary_color", Value: "#000", Type: models.SettingTypeColor})
	require.NoError(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedMissing(t *testing.T) {
	db := testutil.OpenDB(t)

	_, err := Upsert(db, models.SiteSetting{Key: "site_name", Value: "Acme", Category: "general"})
	require.NoError(t, err)

	seed := []models.SiteSetting{
		{Key: "site_name", Value: "GrowFastWithUs", Type: models.SettingTypeText, Category: "general"},
		{Key: "primary_color", Value: "#ff6b35", Type: models.SettingTypeColor, Category: models.SettingCategoryTheme},
	}

	n, err := SeedMissing(db, seed)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	stored, err := Get(db, "site_name")
	require.NoError(t, err)
	assert.Equal(t, "Acme", stored.Value)

	color, err := Get(db, "primary_color")
	require.NoError(t, err)
	assert.Equal(t, models.SettingTypeColor, color.Type)

	n, err = SeedMissing(db, seed)
	require.NoError(t, err)
	assert.Zero(t, n)

	_, err = SeedMissing(nil, seed)
	require.ErrorIs(t, err, controller.ErrDBNil)
}
