package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/subhashree8125/rental-platform/internal/model"
	"github.com/subhashree8125/rental-platform/internal/store"
)

func TestCreateListing(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(store.NewUserStore(db))
	listings := newListingService(t, db)
	owner := signupUser(t, auth, "owner@example.com", "9000000001")

	p, err := listings.Create(owner, validListing(), nil)
	require.NoError(t, err)
	assert.Equal(t, owner, p.OwnerID)
	assert.Equal(t, model.StatusAvailable, p.Status)
	assert.Equal(t, float64(15000), p.RentPrice)
}

func TestCreateListingValidation(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(store.NewUserStore(db))
	listings := newListingService(t, db)
	owner := signupUser(t, auth, "owner@example.com", "9000000001")

	t.Run("bad car_parking", func(t *testing.T) {
		in := validListing()
		in.CarParking = "Maybe"
		_, err := listings.Create(owner, in, nil)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("bad pets", func(t *testing.T) {
		in := validListing()
		in.Pets = "OnlyCats"
		_, err := listings.Create(owner, in, nil)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("negative rent", func(t *testing.T) {
		in := validListing()
		in.RentPrice = "-500"
		_, err := listings.Create(owner, in, nil)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unparseable rent", func(t *testing.T) {
		in := validListing()
		in.RentPrice = "lots"
		_, err := listings.Create(owner, in, nil)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("missing address", func(t *testing.T) {
		in := validListing()
		in.Address = ""
		_, err := listings.Create(owner, in, nil)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("no owner", func(t *testing.T) {
		_, err := listings.Create(0, validListing(), nil)
		assert.ErrorIs(t, err, ErrUnauthorized)
	})
}

func TestCreateListingImagesRoundTrip(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(store.NewUserStore(db))
	listings := newListingService(t, db)
	owner := signupUser(t, auth, "owner@example.com", "9000000001")

	created, err := listings.Create(owner, validListing(), fileHeaders(t, "a.jpg", "b.png"))
	require.NoError(t, err)
	assert.Equal(t, model.ImageList{"a.jpg", "b.png"}, created.Images)

	// Order and names survive a round trip through the store
	fetched, err := store.NewPropertyStore(db).FindByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ImageList{"a.jpg", "b.png"}, fetched.Images)
}

func TestListFilters(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(store.NewUserStore(db))
	listings := newListingService(t, db)
	owner := signupUser(t, auth, "owner@example.com", "9000000001")

	mk := func(propertyType, houseType, rent string) *model.Property {
		in := validListing()
		in.PropertyType = propertyType
		in.HouseType = houseType
		in.RentPrice = rent
		p, err := listings.Create(owner, in, nil)
		require.NoError(t, err)
		return p
	}

	cheapFlat := mk("Apartment", "1BHK", "4000")
	midFlat := mk("Apartment", "2BHK", "7500")
	house := mk("Independent House", "3BHK", "9000")
	pricyFlat := mk("Apartment", "3BHK", "12000")

	t.Run("empty filter returns all available newest first", func(t *testing.T) {
		got, err := listings.List(store.ListFilter{})
		require.NoError(t, err)
		require.Len(t, got, 4)
		assert.Equal(t, pricyFlat.ID, got[0].ID)
		assert.Equal(t, house.ID, got[1].ID)
		assert.Equal(t, midFlat.ID, got[2].ID)
		assert.Equal(t, cheapFlat.ID, got[3].ID)
	})

	t.Run("budget range and type are conjunctive", func(t *testing.T) {
		min, max := 5000.0, 10000.0
		got, err := listings.List(store.ListFilter{
			MinBudget:     &min,
			MaxBudget:     &max,
			PropertyTypes: []string{"Apartment"},
		})
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, midFlat.ID, got[0].ID)
	})

	t.Run("budget range is inclusive", func(t *testing.T) {
		min, max := 4000.0, 9000.0
		got, err := listings.List(store.ListFilter{MinBudget: &min, MaxBudget: &max})
		require.NoError(t, err)
		assert.Len(t, got, 3)
	})

	t.Run("bhk filter", func(t *testing.T) {
		got, err := listings.List(store.ListFilter{BHK: []string{"3BHK"}})
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})

	t.Run("unavailable listings never appear in the feed", func(t *testing.T) {
		_, err := listings.UpdateStatus(midFlat.ID, owner, model.StatusUnavailable)
		require.NoError(t, err)

		got, err := listings.List(store.ListFilter{})
		require.NoError(t, err)
		for _, p := range got {
			assert.NotEqual(t, midFlat.ID, p.ID)
			assert.Equal(t, model.StatusAvailable, p.Status)
		}
	})
}

func TestListByOwner(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(store.NewUserStore(db))
	listings := newListingService(t, db)
	owner := signupUser(t, auth, "owner@example.com", "9000000001")
	other := signupUser(t, auth, "other@example.com", "9000000002")

	first, err := listings.Create(owner, validListing(), nil)
	require.NoError(t, err)
	second, err := listings.Create(owner, validListing(), nil)
	require.NoError(t, err)
	_, err = listings.Create(other, validListing(), nil)
	require.NoError(t, err)

	// Owner sees everything they posted, any status, newest first
	_, err = listings.UpdateStatus(first.ID, owner, model.StatusUnavailable)
	require.NoError(t, err)

	got, err := listings.ListByOwner(owner)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, second.ID, got[0].ID)
	assert.Equal(t, first.ID, got[1].ID)
}

func TestUpdateStatus(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(store.NewUserStore(db))
	listings := newListingService(t, db)
	owner := signupUser(t, auth, "owner@example.com", "9000000001")
	stranger := signupUser(t, auth, "stranger@example.com", "9000000002")

	p, err := listings.Create(owner, validListing(), nil)
	require.NoError(t, err)

	// Both directions of the state machine
	updated, err := listings.UpdateStatus(p.ID, owner, model.StatusUnavailable)
	require.NoError(t, err)
	assert.Equal(t, model.StatusUnavailable, updated.Status)
	updated, err = listings.UpdateStatus(p.ID, owner, model.StatusAvailable)
	require.NoError(t, err)
	assert.Equal(t, model.StatusAvailable, updated.Status)

	_, err = listings.UpdateStatus(p.ID, owner, "Pending")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = listings.UpdateStatus(p.ID, stranger, model.StatusUnavailable)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = listings.UpdateStatus(99999, owner, model.StatusUnavailable)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPartialUpdate(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(store.NewUserStore(db))
	listings := newListingService(t, db)
	owner := signupUser(t, auth, "owner@example.com", "9000000001")
	stranger := signupUser(t, auth, "stranger@example.com", "9000000002")

	p, err := listings.Create(owner, validListing(), nil)
	require.NoError(t, err)

	rent := "18000"
	desc := "Renovated kitchen"
	updated, err := listings.Update(p.ID, owner, ListingUpdate{
		RentPrice:   &rent,
		Description: &desc,
	})
	require.NoError(t, err)
	assert.Equal(t, float64(18000), updated.RentPrice)
	assert.Equal(t, "Renovated kitchen", updated.Description)
	// Absent fields untouched
	assert.Equal(t, p.Address, updated.Address)
	assert.Equal(t, p.CarParking, updated.CarParking)

	badPets := "OnlyFish"
	_, err = listings.Update(p.ID, owner, ListingUpdate{Pets: &badPets})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = listings.Update(p.ID, stranger, ListingUpdate{Description: &desc})
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = listings.Update(99999, owner, ListingUpdate{})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteListing(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(store.NewUserStore(db))
	listings := newListingService(t, db)
	owner := signupUser(t, auth, "owner@example.com", "9000000001")
	stranger := signupUser(t, auth, "stranger@example.com", "9000000002")

	p, err := listings.Create(owner, validListing(), fileHeaders(t, "a.jpg"))
	require.NoError(t, err)

	assert.ErrorIs(t, listings.Delete(p.ID, stranger), ErrForbidden)

	require.NoError(t, listings.Delete(p.ID, owner))
	_, err = store.NewPropertyStore(db).FindByID(p.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)

	assert.ErrorIs(t, listings.Delete(p.ID, owner), ErrNotFound)
}

func TestGetContact(t *testing.T) {
	db := newTestDB(t)
	auth := NewAuthService(store.NewUserStore(db))
	listings := newListingService(t, db)
	owner := signupUser(t, auth, "owner@example.com", "9000000001")

	p, err := listings.Create(owner, validListing(), nil)
	require.NoError(t, err)

	mobile, err := listings.GetContact(p.ID)
	require.NoError(t, err)
	assert.Equal(t, "9876543210", mobile)

	_, err = listings.GetContact(99999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProfileDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	users := store.NewUserStore(db)
	auth := NewAuthService(users)
	listings := newListingService(t, db)
	profiles := NewProfileService(users)
	owner := signupUser(t, auth, "owner@example.com", "9000000001")

	p1, err := listings.Create(owner, validListing(), nil)
	require.NoError(t, err)
	p2, err := listings.Create(owner, validListing(), nil)
	require.NoError(t, err)

	require.NoError(t, profiles.Delete(owner))

	got, err := listings.ListByOwner(owner)
	require.NoError(t, err)
	assert.Empty(t, got)

	props := store.NewPropertyStore(db)
	_, err = props.FindByID(p1.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
	_, err = props.FindByID(p2.ID)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestProfileUpdate(t *testing.T) {
	db := newTestDB(t)
	users := store.NewUserStore(db)
	auth := NewAuthService(users)
	profiles := NewProfileService(users)
	id := signupUser(t, auth, "me@example.com", "9000000001")

	name := "New Name"
	mobile := "9555555555"
	user, err := profiles.Update(id, ProfileUpdate{FullName: &name, MobileNumber: &mobile})
	require.NoError(t, err)
	assert.Equal(t, "New Name", user.FullName)
	assert.Equal(t, "9555555555", user.MobileNumber)
	assert.Equal(t, "me@example.com", user.Email)

	empty := ""
	_, err = profiles.Update(id, ProfileUpdate{FullName: &empty})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = profiles.Get(99999)
	assert.ErrorIs(t, err, ErrNotFound)
}
