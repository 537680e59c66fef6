// Package seed loads the demo data set: a handful of cages, animals, staff,
// tickets, events and inventory plus one login per role.
package seed

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"zoo_management/pkg/models"
)

func ptr[T any](v T) *T { return &v }

// Run inserts the demo rows. Rows whose id already exists are left alone, so
// running it twice is harmless.
func Run(ctx context.Context, db *gorm.DB, log *zap.Logger) error {
	users, err := demoUsers()
	if err != nil {
		return fmt.Errorf("hash demo passwords: %w", err)
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var infoCount int64
		if err := tx.Model(&models.ZooInfo{}).Count(&infoCount).Error; err != nil {
			return fmt.Errorf("count zoo info: %w", err)
		}
		if infoCount == 0 {
			if err := tx.Create(demoZooInfo()).Error; err != nil {
				return fmt.Errorf("seed zoo info: %w", err)
			}
		}

		batches := []struct {
			name string
			rows interface{}
		}{
			{"cages", demoCages()},
			{"animals", demoAnimals()},
			{"employees", demoEmployees()},
			{"doctors", demoDoctors()},
			{"tickets", demoTickets()},
			{"events", demoEvents()},
			{"inventory", demoInventory()},
			{"users", users},
		}
		for _, b := range batches {
			res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(b.rows)
			if res.Error != nil {
				return fmt.Errorf("seed %s: %w", b.name, res.Error)
			}
			log.Info("Seeded table", zap.String("table", b.name), zap.Int64("inserted", res.RowsAffected))
		}
		return nil
	})
}

func demoZooInfo() *models.ZooInfo {
	return &models.ZooInfo{
		Name:        "Central City Zoo",
		Location:    ptr("123 Wild Way, Natureville"),
		Description: ptr("A world-class zoo dedicated to conservation."),
		Capacity:    ptr("5000"),
		StartTime:   ptr("09:00"),
		EndTime:     ptr("18:00"),
	}
}

func demoCages() []models.Cage {
	cage := func(id, name, kind string, capacity, occupancy int64, location, status string) models.Cage {
		return models.Cage{
			ID: id, Name: name, Type: ptr(kind), Capacity: ptr(capacity), Occupancy: ptr(occupancy),
			Location: ptr(location), Status: ptr(status),
		}
	}
	return []models.Cage{
		cage("C1", "Savanna Enclosure A", "Outdoor", 5, 2, "North Zone", "Active"),
		cage("C2", "Elephant Sanctuary", "Outdoor", 3, 1, "North Zone", "Active"),
		cage("C3", "Giraffe Heights", "Mixed", 4, 1, "East Zone", "Active"),
		cage("C4", "Arctic Cove", "Indoor/Pool", 20, 12, "South Zone", "Active"),
		cage("C5", "Reptile House", "Indoor", 50, 45, "West Zone", "Maintenance"),
	}
}

func demoAnimals() []models.Animal {
	animal := func(id, name, species string, age int64, gender, health, cageID, notes string) models.Animal {
		return models.Animal{
			ID: id, Name: name, Species: species, Age: ptr(age), Gender: ptr(gender),
			HealthStatus: ptr(health), CageID: ptr(cageID), Notes: ptr(notes),
		}
	}
	return []models.Animal{
		animal("1", "Simba", "Lion", 5, "Male", "Healthy", "C1", "Dominant male, good appetite"),
		animal("2", "Nala", "Lion", 4, "Female", "Healthy", "C1", "Playful, interacts well with keepers"),
		animal("3", "Dumbo", "Elephant", 12, "Male", "Healthy", "C2", "Needs extra hydration in summer"),
		animal("4", "Melman", "Giraffe", 7, "Male", "Under Observation", "C3", "Mild limp on left front leg"),
		animal("5", "Skipper", "Penguin", 3, "Male", "Healthy", "C4", "Very active during feeding time"),
	}
}

func demoEmployees() []models.Employee {
	employee := func(id, name, email, role, phone string, salary float64, joined, status string) models.Employee {
		return models.Employee{
			ID: id, Name: name, Email: ptr(email), Role: ptr(role), Phone: ptr(phone),
			Salary: ptr(salary), JoinDate: ptr(joined), Status: ptr(status),
		}
	}
	return []models.Employee{
		employee("E1", "John Doe", "john@zoo.com", "Zookeeper", "555-0101", 45000, "2019-01-15", "Active"),
		employee("E2", "Jane Smith", "jane@zoo.com", "Manager", "555-0102", 65000, "2018-05-20", "Active"),
		employee("E3", "Mike Johnson", "mike@zoo.com", "Maintenance", "555-0103", 40000, "2020-03-10", "On Leave"),
	}
}

func demoDoctors() []models.Doctor {
	return []models.Doctor{
		{
			ID: "D1", Name: "Dr. Sarah Wilson", Specialization: ptr("Large Mammals"), Email: ptr("sarah@zoo.com"),
			Phone: ptr("555-0201"), Availability: ptr("Available"), Experience: ptr("10 years"),
		},
		{
			ID: "D2", Name: "Dr. James Chen", Specialization: ptr("Avian & Reptiles"), Email: ptr("james@zoo.com"),
			Phone: ptr("555-0202"), Availability: ptr("On Call"), Experience: ptr("8 years"),
		},
	}
}

func demoTickets() []models.Ticket {
	return []models.Ticket{
		{ID: "T1", Type: "Adult", Price: 25, Description: ptr("Standard entry for ages 13-64")},
		{ID: "T2", Type: "Child", Price: 15, Description: ptr("Entry for ages 3-12")},
		{ID: "T3", Type: "Senior", Price: 20, Description: ptr("Entry for ages 65+")},
		{ID: "T4", Type: "Group", Price: 18, Description: ptr("Per person, min 10 people")},
	}
}

func demoEvents() []models.Event {
	event := func(id, title, description, date, at, location string, capacity, registered int64) models.Event {
		return models.Event{
			ID: id, Title: title, Description: ptr(description), Date: ptr(date), Time: ptr(at),
			Location: ptr(location), Capacity: ptr(capacity), RegisteredCount: ptr(registered),
			Status: ptr("Upcoming"),
		}
	}
	return []models.Event{
		event("EV1", "Lion Feeding", "Watch our keepers feed the lions", "2024-06-15", "14:00", "Savanna Enclosure", 50, 32),
		event("EV2", "Elephant Bath", "See the elephants get a scrub", "2024-06-16", "11:00", "Elephant Sanctuary", 100, 85),
		event("EV3", "Night Safari", "Guided tour after dark", "2024-06-20", "20:00", "Main Gate", 30, 30),
	}
}

func demoInventory() []models.InventoryItem {
	item := func(id, name, category string, quantity float64, unit string, threshold float64, expiry *string, supplier string) models.InventoryItem {
		return models.InventoryItem{
			ID: id, Name: name, Category: ptr(category), Quantity: ptr(quantity), Unit: ptr(unit),
			MinThreshold: ptr(threshold), ExpiryDate: expiry, Supplier: ptr(supplier),
		}
	}
	return []models.InventoryItem{
		item("I1", "Premium Meat Mix", "Food", 500, "kg", 100, ptr("2024-06-30"), "Meadow Farms"),
		item("I2", "Hay Bales", "Food", 200, "bales", 50, ptr("2024-12-31"), "Green Fields"),
		item("I3", "Antibiotics Type A", "Medicine", 50, "doses", 20, ptr("2025-01-15"), "VetSupplies Co."),
		item("I4", "Cleaning Solution", "Equipment", 100, "liters", 20, nil, "EcoClean"),
	}
}

func demoUsers() ([]models.User, error) {
	users := []models.User{
		{ID: "user-1", Name: "Admin User", Email: "admin@zoo.com", Password: "admin123", Role: "admin"},
		{ID: "user-2", Name: "Staff User", Email: "staff@zoo.com", Password: "staff123", Role: "staff"},
		{ID: "user-3", Name: "Visitor User", Email: "visitor@zoo.com", Password: "visitor123", Role: "visitor"},
	}
	for i := range users {
		hash, err := bcrypt.GenerateFromPassword([]byte(users[i].Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		users[i].Password = string(hash)
	}
	return users, nil
}
