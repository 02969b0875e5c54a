package domain

import "strings"

// Category groups products. Product names are unique within a category.
type Category struct {
	ID   string
	Name string
}

// Provider supplies products. It is optional on a product.
type Provider struct {
	ID    string
	Name  string
	Phone string
	Email string
}

// Unit is the unit of measure stock is counted in.
type Unit struct {
	ID           string
	Name         string
	Abbreviation string
}

func NewCategory(id, name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyReferenceName
	}
	return &Category{ID: id, Name: name}, nil
}

func NewProvider(id, name, phone, email string) (*Provider, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyReferenceName
	}
	return &Provider{ID: id, Name: name, Phone: strings.TrimSpace(phone), Email: strings.TrimSpace(email)}, nil
}

func NewUnit(id, name, abbreviation string) (*Unit, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyReferenceName
	}
	return &Unit{ID: id, Name: name, Abbreviation: strings.TrimSpace(abbreviation)}, nil
}
