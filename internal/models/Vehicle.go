// internal/models/vehicle.go
package models

import (
	"fmt"
	"strconv"

	"github.com/twpayne/go-geom"
	gjson "github.com/twpayne/go-geom/encoding/geojson"
)

// Vehicle statuses.
const (
	VehicleActive = "active"
	VehicleOnHold = "onHold"

	RunningAvailable = "Available"
	RunningBooked    = "Booked"
)

type ExtendedPrice struct {
	PerHour Number `json:"perHour,omitempty"`
	PerDay  Number `json:"perDay,omitempty"`
}

// BranchLocation is a GeoJSON-style point; Coordinates is [lng, lat].
type BranchLocation struct {
	Type        string    `json:"type,omitempty"`
	Coordinates []float64 `json:"coordinates,omitempty"`
}

type Branch struct {
	Name     string          `json:"name,omitempty"`
	Location *BranchLocation `json:"location,omitempty"`
}

// Vehicle is a car in the rental fleet (/car/get-cars, /car/getcar/{id}).
type Vehicle struct {
	ID                 string         `json:"_id"`
	CarName            string         `json:"carName"`
	Model              string         `json:"model"`
	Year               Number         `json:"year,omitempty"`
	PricePerHour       Number         `json:"pricePerHour,omitempty"`
	PricePerDay        Number         `json:"pricePerDay,omitempty"`
	ExtendedPrice      *ExtendedPrice `json:"extendedPrice,omitempty"`
	DelayPerHour       Number         `json:"delayPerHour,omitempty"`
	DelayPerDay        Number         `json:"delayPerDay,omitempty"`
	Fuel               string         `json:"fuel,omitempty"`
	Seats              Number         `json:"seats,omitempty"`
	Type               string         `json:"type,omitempty"`
	CarType            string         `json:"carType,omitempty"`
	Location           string         `json:"location,omitempty"`
	VehicleNumber      string         `json:"vehicleNumber,omitempty"`
	Status             string         `json:"status,omitempty"`
	RunningStatus      string         `json:"runningStatus,omitempty"`
	AvailabilityStatus bool           `json:"availabilityStatus"`
	CarImage           []string       `json:"carImage,omitempty"`
	CarDocs            []string       `json:"carDocs,omitempty"`
	Branch             *Branch        `json:"branch,omitempty"`
}

// BranchPoint decodes the branch [lng, lat] pair into a point.
func (v Vehicle) BranchPoint() (*geom.Point, bool) {
	if v.Branch == nil || v.Branch.Location == nil || len(v.Branch.Location.Coordinates) < 2 {
		return nil, false
	}
	c := v.Branch.Location.Coordinates
	p, err := geom.NewPoint(geom.XY).SetCoords(geom.Coord{c[0], c[1]})
	if err != nil {
		return nil, false
	}
	return p, true
}

// BranchGeoJSON renders the branch point as a GeoJSON geometry string.
func (v Vehicle) BranchGeoJSON() (string, error) {
	p, ok := v.BranchPoint()
	if !ok {
		return "", nil
	}
	b, err := gjson.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("encode branch location: %w", err)
	}
	return string(b), nil
}

// BranchLatLng renders the branch point as "lat, lng" for display.
func (v Vehicle) BranchLatLng() string {
	p, ok := v.BranchPoint()
	if !ok {
		return ""
	}
	return strconv.FormatFloat(p.Y(), 'f', -1, 64) + ", " + strconv.FormatFloat(p.X(), 'f', -1, 64)
}

func (v Vehicle) BranchName() string {
	if v.Branch == nil {
		return ""
	}
	return v.Branch.Name
}
