package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hotel-reservation-backend/models"
)

type RoomTypeSummary struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	MaxGuests   int     `gorm:"column:max_guests" json:"maxGuests"`
	Image       *string `json:"image"`
}

type CreateRoomTypeInput struct {
	Name         string
	Description  string
	MaxGuests    int
	ImageURLs    []string
	PrimaryIndex int
}

type UpdateRoomTypeInput struct {
	Name              string
	Description       string
	MaxGuests         int
	RemainingImageIDs []uint
	NewImageURLs      []string
	// PrimaryKey selects the new primary image: "existing-<imageID>" or
	// "new-<index into NewImageURLs>". Empty leaves no primary set.
	PrimaryKey string
}

type SetRateInput struct {
	PricePerNight string
	StartDate     string
	EndDate       string
}

// RoomTypeService manages the room-type catalog: types, their images (with the
// single-primary invariant), their rates, and the administrative cascade delete.
type RoomTypeService interface {
	List(ctx context.Context) ([]RoomTypeSummary, error)
	Get(ctx context.Context, id uint) (*models.RoomType, error)
	Create(ctx context.Context, in CreateRoomTypeInput) (*models.RoomType, error)
	Update(ctx context.Context, id uint, in UpdateRoomTypeInput) error
	Delete(ctx context.Context, id uint) error
	ListImages(ctx context.Context, roomTypeID uint) ([]models.RoomTypeImage, error)
	AddImageByURL(ctx context.Context, roomTypeID uint, imageURL string, isPrimary bool) error
	SetPrimaryImage(ctx context.Context, imageID uint) error
	DeleteImage(ctx context.Context, imageID uint) error
	ListRates(ctx context.Context, roomTypeID uint) ([]models.RoomRate, error)
	SetRate(ctx context.Context, roomTypeID uint, in SetRateInput) (*models.RoomRate, error)
}

type roomTypeService struct {
	db *gorm.DB
}

func NewRoomTypeService(db *gorm.DB) RoomTypeService {
	return &roomTypeService{db: db}
}

func (s *roomTypeService) List(ctx context.Context) ([]RoomTypeSummary, error) {
	rows := []RoomTypeSummary{}
	err := s.db.WithContext(ctx).
		Table("room_types").
		Select("room_types.id, room_types.name, room_types.description, room_types.max_guests, room_type_images.image_url AS image").
		Joins("LEFT JOIN room_type_images ON room_type_images.room_type_id = room_types.id AND room_type_images.is_primary = TRUE").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list room types: %w", err)
	}
	return rows, nil
}

func (s *roomTypeService) Get(ctx context.Context, id uint) (*models.RoomType, error) {
	var roomType models.RoomType
	err := s.db.WithContext(ctx).Preload("Images").First(&roomType, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get room type: %w", err)
	}
	return &roomType, nil
}

func (s *roomTypeService) Create(ctx context.Context, in CreateRoomTypeInput) (*models.RoomType, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" || in.MaxGuests < 1 {
		return nil, ErrMissingFields
	}

	roomType := models.RoomType{
		Name:        name,
		Description: in.Description,
		MaxGuests:   in.MaxGuests,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&roomType).Error; err != nil {
			return fmt.Errorf("create room type: %w", err)
		}
		for i, url := range in.ImageURLs {
			img := models.RoomTypeImage{
				RoomTypeID: roomType.ID,
				ImageURL:   url,
				IsPrimary:  i == in.PrimaryIndex,
			}
			if err := tx.Create(&img).Error; err != nil {
				return fmt.Errorf("create room type image: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &roomType, nil
}

func (s *roomTypeService) Update(ctx context.Context, id uint, in UpdateRoomTypeInput) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var roomType models.RoomType
		if err := tx.First(&roomType, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("find room type: %w", err)
		}

		updates := map[string]interface{}{
			"name":        strings.TrimSpace(in.Name),
			"description": in.Description,
			"max_guests":  in.MaxGuests,
		}
		if err := tx.Model(&roomType).Updates(updates).Error; err != nil {
			return fmt.Errorf("update room type: %w", err)
		}

		// Drop images the admin removed in the edit form.
		if len(in.RemainingImageIDs) > 0 {
			err := tx.
				Where("room_type_id = ? AND id NOT IN ?", id, in.RemainingImageIDs).
				Delete(&models.RoomTypeImage{}).Error
			if err != nil {
				return fmt.Errorf("delete removed images: %w", err)
			}
		}

		// Reset every primary flag before electing the new one.
		err := tx.Model(&models.RoomTypeImage{}).
			Where("room_type_id = ?", id).
			Update("is_primary", false).Error
		if err != nil {
			return fmt.Errorf("reset primary flags: %w", err)
		}

		newImageIDs := make([]uint, 0, len(in.NewImageURLs))
		for _, url := range in.NewImageURLs {
			img := models.RoomTypeImage{RoomTypeID: id, ImageURL: url}
			if err := tx.Create(&img).Error; err != nil {
				return fmt.Errorf("create room type image: %w", err)
			}
			newImageIDs = append(newImageIDs, img.ID)
		}

		primaryID, ok := resolvePrimaryKey(in.PrimaryKey, newImageIDs)
		if !ok {
			return nil
		}
		err = tx.Model(&models.RoomTypeImage{}).
			Where("id = ? AND room_type_id = ?", primaryID, id).
			Update("is_primary", true).Error
		if err != nil {
			return fmt.Errorf("set primary image: %w", err)
		}
		return nil
	})
}

// resolvePrimaryKey maps "existing-<id>" or "new-<index>" onto an image id.
func resolvePrimaryKey(key string, newImageIDs []uint) (uint, bool) {
	parts := strings.SplitN(strings.TrimSpace(key), "-", 2)
	if len(parts) != 2 {
		return 0, false
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil || n < 0 {
		return 0, false
	}
	switch parts[0] {
	case "existing":
		return uint(n), n > 0
	case "new":
		if n >= len(newImageIDs) {
			return 0, false
		}
		return newImageIDs[n], true
	}
	return 0, false
}

// Delete removes a room type and everything hanging off it: reservations made
// against its rooms, the join rows, the rooms, rates and images. Children go
// first so foreign keys hold, and the whole cascade is one transaction.
func (s *roomTypeService) Delete(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var roomType models.RoomType
		if err := tx.First(&roomType, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("find room type: %w", err)
		}

		var roomIDs []uint
		if err := tx.Model(&models.Room{}).Where("room_type_id = ?", id).Pluck("id", &roomIDs).Error; err != nil {
			return fmt.Errorf("collect room ids: %w", err)
		}

		if len(roomIDs) > 0 {
			var reservationIDs []uint
			err := tx.Model(&models.ReservationRoom{}).
				Where("room_id IN ?", roomIDs).
				Distinct().
				Pluck("reservation_id", &reservationIDs).Error
			if err != nil {
				return fmt.Errorf("collect reservation ids: %w", err)
			}

			if len(reservationIDs) > 0 {
				if err := tx.Where("reservation_id IN ?", reservationIDs).Delete(&models.ReservationRoom{}).Error; err != nil {
					return fmt.Errorf("delete reservation rooms: %w", err)
				}
				if err := tx.Where("id IN ?", reservationIDs).Delete(&models.Reservation{}).Error; err != nil {
					return fmt.Errorf("delete reservations: %w", err)
				}
			}

			if err := tx.Where("id IN ?", roomIDs).Delete(&models.Room{}).Error; err != nil {
				return fmt.Errorf("delete rooms: %w", err)
			}
		}

		if err := tx.Where("room_type_id = ?", id).Delete(&models.RoomRate{}).Error; err != nil {
			return fmt.Errorf("delete room rates: %w", err)
		}
		if err := tx.Where("room_type_id = ?", id).Delete(&models.RoomTypeImage{}).Error; err != nil {
			return fmt.Errorf("delete room type images: %w", err)
		}
		if err := tx.Delete(&models.RoomType{}, id).Error; err != nil {
			return fmt.Errorf("delete room type: %w", err)
		}
		return nil
	})
}

func (s *roomTypeService) ListImages(ctx context.Context, roomTypeID uint) ([]models.RoomTypeImage, error) {
	images := []models.RoomTypeImage{}
	err := s.db.WithContext(ctx).
		Where("room_type_id = ?", roomTypeID).
		Order("is_primary DESC").
		Find(&images).Error
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	return images, nil
}

func (s *roomTypeService) AddImageByURL(ctx context.Context, roomTypeID uint, imageURL string, isPrimary bool) error {
	if strings.TrimSpace(imageURL) == "" {
		return ErrMissingFields
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if isPrimary {
			err := tx.Model(&models.RoomTypeImage{}).
				Where("room_type_id = ?", roomTypeID).
				Update("is_primary", false).Error
			if err != nil {
				return fmt.Errorf("reset primary flags: %w", err)
			}
		}
		img := models.RoomTypeImage{
			RoomTypeID: roomTypeID,
			ImageURL:   imageURL,
			IsPrimary:  isPrimary,
		}
		if err := tx.Create(&img).Error; err != nil {
			return fmt.Errorf("create image: %w", err)
		}
		return nil
	})
}

// SetPrimaryImage flips the primary flag to the given image. Clear-then-set
// runs in one transaction so two concurrent swaps cannot leave zero or two
// primaries behind.
func (s *roomTypeService) SetPrimaryImage(ctx context.Context, imageID uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var image models.RoomTypeImage
		if err := tx.First(&image, imageID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return fmt.Errorf("find image: %w", err)
		}

		err := tx.Model(&models.RoomTypeImage{}).
			Where("room_type_id = ?", image.RoomTypeID).
			Update("is_primary", false).Error
		if err != nil {
			return fmt.Errorf("reset primary flags: %w", err)
		}

		return tx.Model(&models.RoomTypeImage{}).
			Where("id = ?", image.ID).
			Update("is_primary", true).Error
	})
}

func (s *roomTypeService) DeleteImage(ctx context.Context, imageID uint) error {
	var image models.RoomTypeImage
	if err := s.db.WithContext(ctx).First(&image, imageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("find image: %w", err)
	}
	return s.db.WithContext(ctx).Delete(&models.RoomTypeImage{}, image.ID).Error
}

func (s *roomTypeService) ListRates(ctx context.Context, roomTypeID uint) ([]models.RoomRate, error) {
	rates := []models.RoomRate{}
	err := s.db.WithContext(ctx).
		Where("room_type_id = ?", roomTypeID).
		Order("start_date").
		Find(&rates).Error
	if err != nil {
		return nil, fmt.Errorf("list rates: %w", err)
	}
	return rates, nil
}

func (s *roomTypeService) SetRate(ctx context.Context, roomTypeID uint, in SetRateInput) (*models.RoomRate, error) {
	var roomType models.RoomType
	if err := s.db.WithContext(ctx).First(&roomType, roomTypeID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find room type: %w", err)
	}

	price, err := decimal.NewFromString(strings.TrimSpace(in.PricePerNight))
	if err != nil || price.IsNegative() {
		return nil, fmt.Errorf("%w: bad price", ErrInvalidRateRange)
	}
	start, err := parseDate(in.StartDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad start date", ErrInvalidRateRange)
	}
	end, err := parseDate(in.EndDate)
	if err != nil {
		return nil, fmt.Errorf("%w: bad end date", ErrInvalidRateRange)
	}
	if end.Before(start) {
		return nil, fmt.Errorf("%w: end date before start date", ErrInvalidRateRange)
	}

	rate := models.RoomRate{
		RoomTypeID:    roomTypeID,
		PricePerNight: price,
		StartDate:     datatypes.Date(start),
		EndDate:       datatypes.Date(end),
	}
	if err := s.db.WithContext(ctx).Create(&rate).Error; err != nil {
		return nil, fmt.Errorf("create rate: %w", err)
	}
	return &rate, nil
}
