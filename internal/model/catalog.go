package model

import "github.com/google/uuid"

// CatalogLocation is one location record fetched from the practice catalog
// service, persisted per run so matching reads a stable snapshot.
type CatalogLocation struct {
	RunID uuid.UUID

	PracticeMonolithID string
	PracticeCloudID    string

	LocationMonolithID string
	LocationCloudID    string

	AddressLine1 string
	AddressLine2 string
	City         string
	State        string
	Zip          string

	// IsVirtual is nil when the catalog did not report the flag.
	IsVirtual    *bool
	LocationType string
}

// CatalogColumns returns the ordered column names for COPY into
// loclink.catalog_locations.
func CatalogColumns() []string {
	return []string{
		"run_id",
		"practice_monolith_id",
		"practice_cloud_id",
		"location_monolith_id",
		"location_cloud_id",
		"address_line1",
		"address_line2",
		"city",
		"state",
		"zip",
		"is_virtual",
		"location_type",
	}
}

// CopyValues returns the record values in CatalogColumns() order.
func (c *CatalogLocation) CopyValues() []any {
	return []any{
		c.RunID,
		c.PracticeMonolithID,
		c.PracticeCloudID,
		c.LocationMonolithID,
		c.LocationCloudID,
		c.AddressLine1,
		c.AddressLine2,
		c.City,
		c.State,
		c.Zip,
		c.IsVirtual,
		c.LocationType,
	}
}
