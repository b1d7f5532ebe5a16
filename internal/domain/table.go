package domain

type TableState string

const (
	TableFree     TableState = "free"
	TableOccupied TableState = "occupied"
)

// TableSlot is one physical table on the floor monitor.
type TableSlot struct {
	Number  string     `json:"number"`
	State   TableState `json:"state"`
	OrderID *int       `json:"orderId"`
}
