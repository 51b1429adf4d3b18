package service

import (
	"bytes"
	"mime/multipart"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/subhashree8125/rental-platform/internal/model"
	"github.com/subhashree8125/rental-platform/internal/storage"
	"github.com/subhashree8125/rental-platform/internal/store"
)

// newTestDB opens a throwaway sqlite database with the schema migrated.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&model.User{}, &model.Property{}))
	return db
}

func newListingService(t *testing.T, db *gorm.DB) *ListingService {
	t.Helper()
	images, err := storage.NewImageStore(t.TempDir())
	require.NoError(t, err)
	return NewListingService(store.NewPropertyStore(db), images)
}

// fileHeaders builds real multipart file headers the way an HTTP request
// would deliver them.
func fileHeaders(t *testing.T, names ...string) []*multipart.FileHeader {
	t.Helper()
	body := &bytes.Buffer{}
	w := multipart.NewWriter(body)
	for _, name := range names {
		fw, err := w.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = fw.Write([]byte("image-bytes-" + name))
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(body, w.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { _ = form.RemoveAll() })
	return form.File["images"]
}

// signupUser creates an account and returns its id.
func signupUser(t *testing.T, auth *AuthService, email, mobile string) uint {
	t.Helper()
	id, err := auth.Signup("Test User", email, mobile, "secret123")
	require.NoError(t, err)
	return id
}

func validListing() ListingInput {
	return ListingInput{
		FullName:     "Ravi Kumar",
		MobileNumber: "9876543210",
		Address:      "12 MG Road",
		City:         "Bengaluru",
		Area:         "Indiranagar",
		District:     "Bengaluru Urban",
		PropertyType: "Apartment",
		HouseType:    "2BHK",
		RentPrice:    "15000",
		CarParking:   model.ParkingAvailable,
		Pets:         model.PetsAllowed,
		Facing:       "East",
		Furnishing:   "Semi-Furnished",
		Description:  "Close to metro",
	}
}
