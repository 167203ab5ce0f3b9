package request

import (
	"time"

	"github.com/edvin/insightcrm/internal/model"
)

// CustomerFields are the optional attributes shared by create and update.
// An empty string is stored as null, so on update it clears the field.
// Email, birthday and website accept "" in place of a well-formed value.
type CustomerFields struct {
	Email           *string    `json:"email" validate:"omitnil,max=255,email|len=0"`
	Phone           *string    `json:"phone" validate:"omitnil,max=20"`
	IDNumber        *string    `json:"id_number" validate:"omitnil,max=50"`
	Gender          *string    `json:"gender" validate:"omitnil,oneof=male female other"`
	Birthday        *string    `json:"birthday" validate:"omitnil,datetime=2006-01-02|len=0"`
	ZodiacSign      *string    `json:"zodiac_sign" validate:"omitnil,max=20"`
	Interests       *string    `json:"interests" validate:"omitnil,max=500"`
	IsMarried       *bool      `json:"is_married"`
	HasChildren     *bool      `json:"has_children"`
	CustomerSource  *string    `json:"customer_source" validate:"omitnil,max=100"`
	Company         *string    `json:"company" validate:"omitnil,max=200"`
	Position        *string    `json:"position" validate:"omitnil,max=100"`
	Address         *string    `json:"address" validate:"omitnil,max=500"`
	City            *string    `json:"city" validate:"omitnil,max=50"`
	Country         *string    `json:"country" validate:"omitnil,max=50"`
	Website         *string    `json:"website" validate:"omitnil,url|len=0"`
	Notes           *string    `json:"notes" validate:"omitnil,max=1000"`
	LastContactDate *time.Time `json:"last_contact_date"`
}

// CreateCustomer holds the request body for creating a customer. Any
// assigned_to in the body is ignored; ownership comes from the token.
type CreateCustomer struct {
	Name          string `json:"name" validate:"required,min=1,max=100"`
	CustomerLevel string `json:"customer_level" validate:"omitnil,oneof=A B C D E"`
	Status        string `json:"status" validate:"omitnil,oneof=active inactive potential lost"`
	Priority      string `json:"priority" validate:"omitnil,oneof=high normal low"`
	CustomerFields
}

// UpdateCustomer holds the request body for a partial customer update.
type UpdateCustomer struct {
	Name          *string `json:"name" validate:"omitnil,min=1,max=100"`
	CustomerLevel *string `json:"customer_level" validate:"omitnil,oneof=A B C D E"`
	Status        *string `json:"status" validate:"omitnil,oneof=active inactive potential lost"`
	Priority      *string `json:"priority" validate:"omitnil,oneof=high normal low"`
	CustomerFields
}

func (c CreateCustomer) Customer() *model.Customer {
	f := c.CustomerFields
	return &model.Customer{
		Name:            c.Name,
		Email:           f.Email,
		Phone:           f.Phone,
		IDNumber:        f.IDNumber,
		Gender:          f.Gender,
		Birthday:        f.Birthday,
		ZodiacSign:      f.ZodiacSign,
		Interests:       f.Interests,
		IsMarried:       f.IsMarried,
		HasChildren:     f.HasChildren,
		CustomerLevel:   c.CustomerLevel,
		CustomerSource:  f.CustomerSource,
		Company:         f.Company,
		Position:        f.Position,
		Address:         f.Address,
		City:            f.City,
		Country:         f.Country,
		Website:         f.Website,
		Notes:           f.Notes,
		Status:          c.Status,
		Priority:        c.Priority,
		LastContactDate: f.LastContactDate,
	}
}

func (u UpdateCustomer) Patch() model.CustomerPatch {
	f := u.CustomerFields
	return model.CustomerPatch{
		Name:            u.Name,
		Email:           f.Email,
		Phone:           f.Phone,
		IDNumber:        f.IDNumber,
		Gender:          f.Gender,
		Birthday:        f.Birthday,
		ZodiacSign:      f.ZodiacSign,
		Interests:       f.Interests,
		IsMarried:       f.IsMarried,
		HasChildren:     f.HasChildren,
		CustomerLevel:   u.CustomerLevel,
		CustomerSource:  f.CustomerSource,
		Company:         f.Company,
		Position:        f.Position,
		Address:         f.Address,
		City:            f.City,
		Country:         f.Country,
		Website:         f.Website,
		Notes:           f.Notes,
		Status:          u.Status,
		Priority:        u.Priority,
		LastContactDate: f.LastContactDate,
	}
}
