package station

// InfrastructureType identifies an amenity or connector kind.
type InfrastructureType string

const (
	InfraEntrance        InfrastructureType = "entrance"
	InfraExit            InfrastructureType = "exit"
	InfraWashroom        InfrastructureType = "washroom"
	InfraTicketCounter   InfrastructureType = "ticket_counter"
	InfraWaitingArea     InfrastructureType = "waiting_area"
	InfraDrinkingWater   InfrastructureType = "drinking_water"
	InfraInformationDesk InfrastructureType = "information_desk"
	InfraParking         InfrastructureType = "parking"

	InfraFootOverBridge InfrastructureType = "foot_over_bridge"
	InfraUnderpass      InfrastructureType = "underpass"
	InfraStaircase      InfrastructureType = "staircase"
	InfraElevator       InfrastructureType = "elevator"
	InfraEscalator      InfrastructureType = "escalator"
)

// InfrastructureSpec is the catalog entry for one infrastructure type.
type InfrastructureSpec struct {
	Label     string
	Width     float64
	Height    float64
	Connector bool
	// Spanning connectors are drawn beside the leftmost platform; the
	// others are centred between the connected platforms.
	Spanning bool
}

var catalog = map[InfrastructureType]InfrastructureSpec{
	InfraEntrance:        {Label: "Entrance", Width: 80, Height: 60},
	InfraExit:            {Label: "Exit", Width: 80, Height: 60},
	InfraWashroom:        {Label: "Washroom", Width: 60, Height: 60},
	InfraTicketCounter:   {Label: "Ticket Counter", Width: 100, Height: 60},
	InfraWaitingArea:     {Label: "Waiting Area", Width: 150, Height: 80},
	InfraDrinkingWater:   {Label: "Drinking Water", Width: 30, Height: 30},
	InfraInformationDesk: {Label: "Information Desk", Width: 60, Height: 40},
	InfraParking:         {Label: "Parking", Width: 200, Height: 120},

	InfraFootOverBridge: {Label: "Foot Over Bridge", Width: 40, Connector: true, Spanning: true},
	InfraUnderpass:      {Label: "Underpass", Width: 40, Connector: true, Spanning: true},
	InfraStaircase:      {Label: "Staircase", Width: 30, Connector: true},
	InfraElevator:       {Label: "Elevator", Width: 40, Connector: true},
	InfraEscalator:      {Label: "Escalator", Width: 30, Connector: true},
}

// LookupInfrastructure returns the catalog entry for t.
func LookupInfrastructure(t InfrastructureType) (InfrastructureSpec, bool) {
	s, ok := catalog[t]
	return s, ok
}

// IsConnectorType reports whether t links platforms.
func IsConnectorType(t InfrastructureType) bool {
	return catalog[t].Connector
}
