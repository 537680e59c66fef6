package models

// Columns that the legacy schema left nullable are pointers, so that reads
// and full-row updates can carry NULL.

type ZooInfo struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Name        string `gorm:"not null"`
	Location    *string
	Description *string
	Capacity    *string
	StartTime   *string
	EndTime     *string
}

func (ZooInfo) TableName() string { return "zoo_info" }

type Cage struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"not null"`
	Type      *string
	Capacity  *int64
	Occupancy *int64 `gorm:"default:0"`
	Location  *string
	Status    *string `gorm:"size:20;default:'Active'"`
}

type Animal struct {
	ID           string `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Species      string `gorm:"not null"`
	Age          *int64
	Gender       *string
	HealthStatus *string
	CageID       *string `gorm:"index"`
	Notes        *string

	Cage *Cage `gorm:"foreignKey:CageID"`
}

type Employee struct {
	ID       string  `gorm:"primaryKey"`
	Name     string  `gorm:"not null"`
	Email    *string `gorm:"uniqueIndex"`
	Role     *string
	Phone    *string
	Salary   *float64 `gorm:"type:double precision"`
	JoinDate *string
	Status   *string `gorm:"size:20;default:'Active'"`
}

type Doctor struct {
	ID             string `gorm:"primaryKey"`
	Name           string `gorm:"not null"`
	Specialization *string
	Email          *string `gorm:"uniqueIndex"`
	Phone          *string
	Availability   *string `gorm:"size:20;default:'Available'"`
	Experience     *string
}

type Event struct {
	ID              string `gorm:"primaryKey"`
	Title           string `gorm:"not null"`
	Description     *string
	Date            *string
	Time            *string
	Location        *string
	Capacity        *int64
	RegisteredCount *int64  `gorm:"default:0"`
	Status          *string `gorm:"size:20;default:'Upcoming'"`
}

type Ticket struct {
	ID                 string  `gorm:"primaryKey"`
	Type               string  `gorm:"not null"`
	Price              float64 `gorm:"type:double precision;not null"`
	Description        *string
	StartDate          *string
	DiscountPercentage *float64 `gorm:"type:double precision;default:0"`
}

type TicketSale struct {
	ID           string  `gorm:"primaryKey"`
	TicketID     *string `gorm:"index"`
	Quantity     *int64
	TotalAmount  *float64 `gorm:"type:double precision"`
	Date         *string
	VisitorName  *string
	VisitorEmail *string `gorm:"index"`
	VisitorPhone *string

	Ticket *Ticket `gorm:"foreignKey:TicketID"`
}

type Visitor struct {
	ID               string  `gorm:"primaryKey"`
	Name             string  `gorm:"not null"`
	Email            *string `gorm:"uniqueIndex"`
	Phone            *string
	RegistrationDate *string
}

type InventoryItem struct {
	ID           string `gorm:"primaryKey"`
	Name         string `gorm:"not null"`
	Category     *string
	Quantity     *float64 `gorm:"type:double precision"`
	Unit         *string
	MinThreshold *float64 `gorm:"type:double precision"`
	ExpiryDate   *string
	Supplier     *string
}

func (InventoryItem) TableName() string { return "inventory" }

type MedicalCheck struct {
	ID        string  `gorm:"primaryKey"`
	AnimalID  *string `gorm:"index"`
	DoctorID  *string `gorm:"index"`
	Date      *string
	Diagnosis *string
	Treatment *string
	Status    *string `gorm:"size:20;default:'Completed'"`
	Notes     *string

	Animal *Animal `gorm:"foreignKey:AnimalID"`
	Doctor *Doctor `gorm:"foreignKey:DoctorID"`
}

type Vaccination struct {
	ID               string  `gorm:"primaryKey"`
	AnimalID         *string `gorm:"index"`
	VaccineName      *string
	DateAdministered *string
	NextDueDate      *string
	Veterinarian     *string
	Notes            *string

	Animal *Animal `gorm:"foreignKey:AnimalID"`
}

type User struct {
	ID       string `gorm:"primaryKey"`
	Name     string `gorm:"not null"`
	Email    string `gorm:"size:255;not null;uniqueIndex"`
	Password string `gorm:"not null"`
	Role     string `gorm:"size:20;not null;default:'visitor'"`
}

// AllModels lists every table in an order where referenced tables come
// before the tables that point at them.
func AllModels() []interface{} {
	return []interface{}{
		&ZooInfo{},
		&Cage{},
		&Animal{},
		&Employee{},
		&Doctor{},
		&Event{},
		&Ticket{},
		&TicketSale{},
		&Visitor{},
		&InventoryItem{},
		&MedicalCheck{},
		&Vaccination{},
		&User{},
	}
}
