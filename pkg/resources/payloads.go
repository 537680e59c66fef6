package resources

// Request bodies for each resource. Optional columns are pointers so an
// absent field can be told apart from a zero value.

type AnimalPayload struct {
	ID           *string `json:"id"`
	Name         string  `json:"name" binding:"required"`
	Species      string  `json:"species" binding:"required"`
	Age          *int64  `json:"age" binding:"omitempty,min=0"`
	Gender       *string `json:"gender"`
	HealthStatus *string `json:"healthStatus"`
	CageID       *string `json:"cageId"`
	Notes        *string `json:"notes"`
}

type CagePayload struct {
	ID        *string `json:"id"`
	Name      string  `json:"name" binding:"required"`
	Type      *string `json:"type"`
	Capacity  *int64  `json:"capacity" binding:"omitempty,min=0"`
	Occupancy *int64  `json:"occupancy" binding:"omitempty,min=0"`
	Location  *string `json:"location"`
	Status    *string `json:"status"`
}

type EmployeePayload struct {
	ID       *string  `json:"id"`
	Name     string   `json:"name" binding:"required"`
	Email    *string  `json:"email" binding:"omitempty,email"`
	Role     *string  `json:"role"`
	Phone    *string  `json:"phone"`
	Salary   *float64 `json:"salary" binding:"omitempty,min=0"`
	JoinDate *string  `json:"joinDate"`
	Status   *string  `json:"status"`
}

type DoctorPayload struct {
	ID             *string `json:"id"`
	Name           string  `json:"name" binding:"required"`
	Specialization *string `json:"specialization"`
	Email          *string `json:"email" binding:"omitempty,email"`
	Phone          *string `json:"phone"`
	Availability   *string `json:"availability"`
	Experience     *string `json:"experience"`
}

type EventPayload struct {
	ID              *string `json:"id"`
	Title           string  `json:"title" binding:"required"`
	Description     *string `json:"description"`
	Date            *string `json:"date"`
	Time            *string `json:"time"`
	Location        *string `json:"location"`
	Capacity        *int64  `json:"capacity" binding:"omitempty,min=0"`
	RegisteredCount *int64  `json:"registeredCount" binding:"omitempty,min=0"`
	Status          *string `json:"status"`
}

type TicketPayload struct {
	ID                 *string  `json:"id"`
	Type               *string  `json:"type"`
	Price              *float64 `json:"price" binding:"required,min=0"`
	Description        *string  `json:"description"`
	StartDate          *string  `json:"startDate"`
	DiscountPercentage *float64 `json:"discountPercentage" binding:"omitempty,min=0,max=100"`
}

type TicketSalePayload struct {
	ID           *string  `json:"id"`
	TicketID     *string  `json:"ticketId"`
	Quantity     int64    `json:"quantity" binding:"required,min=1"`
	TotalAmount  *float64 `json:"totalAmount" binding:"omitempty,min=0"`
	Date         *string  `json:"date"`
	VisitorName  *string  `json:"visitorName"`
	VisitorEmail *string  `json:"visitorEmail" binding:"omitempty,email"`
	VisitorPhone *string  `json:"visitorPhone"`
	// EventID is not stored on the sale. When set, the event's registered
	// count is raised by Quantity in the same transaction.
	EventID *string `json:"eventId" column:"-"`
}

type VisitorPayload struct {
	ID               *string `json:"id"`
	Name             string  `json:"name" binding:"required"`
	Email            *string `json:"email" binding:"omitempty,email"`
	Phone            *string `json:"phone"`
	RegistrationDate *string `json:"registrationDate"`
}

type InventoryPayload struct {
	ID           *string  `json:"id"`
	Name         string   `json:"name" binding:"required"`
	Category     *string  `json:"category"`
	Quantity     *float64 `json:"quantity" binding:"omitempty,min=0"`
	Unit         *string  `json:"unit"`
	MinThreshold *float64 `json:"minThreshold" binding:"omitempty,min=0"`
	ExpiryDate   *string  `json:"expiryDate"`
	Supplier     *string  `json:"supplier"`
}

type MedicalCheckPayload struct {
	ID        *string `json:"id"`
	AnimalID  *string `json:"animalId"`
	DoctorID  *string `json:"doctorId"`
	Date      *string `json:"date"`
	Diagnosis *string `json:"diagnosis"`
	Treatment *string `json:"treatment"`
	Status    *string `json:"status"`
	Notes     *string `json:"notes"`
}

type VaccinationPayload struct {
	ID               *string `json:"id"`
	AnimalID         *string `json:"animalId"`
	VaccineName      *string `json:"vaccineName"`
	DateAdministered *string `json:"dateAdministered"`
	NextDueDate      *string `json:"nextDueDate"`
	Veterinarian     *string `json:"veterinarian"`
	Notes            *string `json:"notes"`
}

type RegisterPayload struct {
	Name     string  `json:"name" binding:"required"`
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required,max=72"`
	Role     *string `json:"role" binding:"omitempty,oneof=visitor employee staff admin"`
}

// LoginPayload is not validated: missing or empty credentials are a failed
// login, not a malformed request.
type LoginPayload struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type EventRegistrationPayload struct {
	Quantity int64 `json:"quantity" binding:"required,min=1"`
}
