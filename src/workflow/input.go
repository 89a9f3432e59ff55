package workflow

import (
	"fmt"
	"strconv"
	"strings"

	"carscout/src/model"
	"carscout/src/repository"
)

type (
	// CarInput carries the raw form fields of the add/edit listing screens.
	// Numeric fields arrive as strings and are parsed during validation.
	CarInput struct {
		Manufacturer string
		Model        string
		Year         string
		Mileage      string
		Condition    string
		Description  string
		Price        string
	}

	// DealershipInput carries the raw form fields of the dealership screens.
	DealershipInput struct {
		Name        string
		Address     string
		PhoneNumber string
		Email       string
	}
)

// validate checks the required fields and parses the numeric ones before any
// backend call happens. imageCount is the combined handle count the
// operation will persist.
func (in CarInput) validate(imageCount int) (repository.CarFields, error) {
	fields := repository.CarFields{
		Manufacturer: strings.TrimSpace(in.Manufacturer),
		Model:        strings.TrimSpace(in.Model),
		Condition:    strings.TrimSpace(in.Condition),
		Description:  strings.TrimSpace(in.Description),
	}
	if fields.Manufacturer == "" {
		return repository.CarFields{}, ValidationError{Reason: "manufacturer is required"}
	}
	if fields.Model == "" {
		return repository.CarFields{}, ValidationError{Reason: "model is required"}
	}
	if fields.Condition == "" {
		return repository.CarFields{}, ValidationError{Reason: "condition is required"}
	}

	year, err := strconv.Atoi(strings.TrimSpace(in.Year))
	if err != nil {
		return repository.CarFields{}, ValidationError{Reason: "year must be a whole number"}
	}
	mileage, err := strconv.Atoi(strings.TrimSpace(in.Mileage))
	if err != nil {
		return repository.CarFields{}, ValidationError{Reason: "mileage must be a whole number"}
	}
	price, err := strconv.ParseFloat(strings.TrimSpace(in.Price), 64)
	if err != nil {
		return repository.CarFields{}, ValidationError{Reason: "price must be a number"}
	}
	fields.Year = year
	fields.Mileage = mileage
	fields.Price = price

	if imageCount < 1 {
		return repository.CarFields{}, ValidationError{Reason: "at least one image is required"}
	}
	if imageCount > model.MaxListingImages {
		return repository.CarFields{}, ValidationError{
			Reason: fmt.Sprintf("a listing may carry at most %d images", model.MaxListingImages),
		}
	}
	return fields, nil
}

func (in DealershipInput) validate() (repository.DealershipFields, error) {
	fields := repository.DealershipFields{
		Name:        strings.TrimSpace(in.Name),
		Address:     strings.TrimSpace(in.Address),
		PhoneNumber: strings.TrimSpace(in.PhoneNumber),
		Email:       strings.TrimSpace(in.Email),
	}
	if fields.Name == "" {
		return repository.DealershipFields{}, ValidationError{Reason: "name is required"}
	}
	if fields.Address == "" {
		return repository.DealershipFields{}, ValidationError{Reason: "address is required"}
	}
	if fields.PhoneNumber == "" {
		return repository.DealershipFields{}, ValidationError{Reason: "phone number is required"}
	}
	if fields.Email == "" {
		return repository.DealershipFields{}, ValidationError{Reason: "email is required"}
	}
	return fields, nil
}
