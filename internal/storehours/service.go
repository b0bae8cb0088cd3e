package storehours

import (
	"context"
	"fmt"
	"regexp"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/multierr"
	"gorm.io/gorm"

	"github.com/permataindah/storefront-backend/pkg/db"
	"github.com/permataindah/storefront-backend/pkg/db/models"
	pkgerrors "github.com/permataindah/storefront-backend/pkg/errors"
)

var clockRe = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// DayHours is one weekday's opening window as accepted from the admin panel.
type DayHours struct {
	Day    int    `json:"day" validate:"gte=0,lte=6"`
	Open   string `json:"open" validate:"required"`
	Close  string `json:"close" validate:"required"`
	Closed bool   `json:"closed"`
}

// UpdateRequest replaces the opening hours for the listed weekdays.
type UpdateRequest struct {
	Days []DayHours `json:"days" validate:"required,min=1,dive"`
}

// Service defines the behavior needed by the store hours controller.
type Service interface {
	GetHours(ctx context.Context) ([]models.StoreHours, error)
	UpdateHours(ctx context.Context, req UpdateRequest) ([]models.StoreHours, error)
}

type service struct {
	db *db.Client
}

// ServiceParams bundles the dependencies required to build the service.
type ServiceParams struct {
	DB *db.Client
}

// NewService constructs a store hours service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.DB == nil {
		return nil, fmt.Errorf("database client is required")
	}
	return &service{db: params.DB}, nil
}

// defaultHours is the shop's published schedule before any admin edits.
func defaultHours() []models.StoreHours {
	weekday := func(day int, open, close string) models.StoreHours {
		return models.StoreHours{ID: uuid.New(), Day: day, Open: open, Close: close}
	}
	return []models.StoreHours{
		weekday(0, "10:00", "14:00"),
		weekday(1, "09:00", "18:00"),
		weekday(2, "09:00", "18:00"),
		weekday(3, "09:00", "18:00"),
		weekday(4, "09:00", "18:00"),
		weekday(5, "09:00", "18:00"),
		weekday(6, "10:00", "16:00"),
	}
}

// GetHours returns all seven weekdays, seeding defaults for any missing rows.
func (s *service) GetHours(ctx context.Context) ([]models.StoreHours, error) {
	var hours []models.StoreHours
	if err := s.db.DB().WithContext(ctx).Order("day ASC").Find(&hours).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list store hours")
	}

	present := map[int]bool{}
	for _, h := range hours {
		present[h.Day] = true
	}
	if len(present) < 7 {
		err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
			for _, h := range defaultHours() {
				if present[h.Day] {
					continue
				}
				row := h
				if err := tx.Create(&row).Error; err != nil {
					return err
				}
				hours = append(hours, row)
			}
			return nil
		})
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "seed store hours")
		}
	}

	sort.Slice(hours, func(i, j int) bool { return hours[i].Day < hours[j].Day })
	return hours, nil
}

// UpdateHours overwrites the submitted weekdays and returns the full week.
func (s *service) UpdateHours(ctx context.Context, req UpdateRequest) ([]models.StoreHours, error) {
	if len(req.Days) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one day is required")
	}
	// Collect every problem so the admin panel can show them all at once.
	var errs []error
	seen := map[int]bool{}
	for _, d := range req.Days {
		if d.Day < 0 || d.Day > 6 {
			errs = append(errs, fmt.Errorf("day %d must be between 0 and 6", d.Day))
			continue
		}
		if seen[d.Day] {
			errs = append(errs, fmt.Errorf("day %d listed twice", d.Day))
		}
		seen[d.Day] = true
		if !clockRe.MatchString(d.Open) || !clockRe.MatchString(d.Close) {
			errs = append(errs, fmt.Errorf("day %d times must use the HH:MM 24-hour format", d.Day))
			continue
		}
		if !d.Closed && d.Close <= d.Open {
			errs = append(errs, fmt.Errorf("day %d closes before it opens", d.Day))
		}
	}
	if combined := multierr.Combine(errs...); combined != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, combined, "invalid store hours")
	}

	// Ensure the full week exists before applying partial updates.
	if _, err := s.GetHours(ctx); err != nil {
		return nil, err
	}

	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		for _, d := range req.Days {
			err := tx.Model(&models.StoreHours{}).
				Where("day = ?", d.Day).
				Updates(map[string]any{
					"open":   d.Open,
					"close":  d.Close,
					"closed": d.Closed,
				}).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update store hours")
	}

	return s.GetHours(ctx)
}
