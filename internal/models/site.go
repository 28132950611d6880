package models

// Site represents a catalogued tower site that simulations can be run against.
type Site struct {
	ID               int         // ID is the unique identifier for the site.
	Name             string      // Name is a human readable label.
	Address          string      // Address is the postal address of the site, may be empty.
	Location         Coordinates // Location is where the tower stands.
	TransmitPowerDbm float64     // TransmitPowerDbm is the nominal transmit power of the tower.
}
