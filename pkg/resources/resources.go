// Package resources describes the entities exposed through the uniform CRUD
// routes: their path, table model, request payload and insert defaults.
package resources

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"

	"zoo_management/pkg/casing"
	"zoo_management/pkg/models"
)

// DateLayout is the calendar date format stored in text date columns.
const DateLayout = "2006-01-02"

type Resource struct {
	// Path is the segment under /api.
	Path string
	// Noun is used in failure messages, e.g. "Failed to add <noun>".
	Noun string
	// Model is an empty model value naming the table.
	Model any
	// IDPrefix is used to generate ids for rows created without one.
	IDPrefix string

	Updatable bool
	Deletable bool

	NewPayload func() any
	// Normalize rewrites storage-case columns on both insert and update.
	Normalize func(row map[string]any)
	// Defaults fills storage-case columns on insert. now is the request time.
	Defaults func(row map[string]any, now time.Time)
}

// Registry is every resource served under /api/<path>.
var Registry = []*Resource{
	{
		Path: "animals", Noun: "animal", Model: &models.Animal{}, IDPrefix: "animal",
		Updatable: true, Deletable: true,
		NewPayload: func() any { return &AnimalPayload{} },
		Normalize:  nullEmpty("cage_id"),
	},
	{
		Path: "cages", Noun: "cage", Model: &models.Cage{}, IDPrefix: "cage",
		Updatable: true, Deletable: true,
		NewPayload: func() any { return &CagePayload{} },
		Defaults:   setDefaults(map[string]any{"occupancy": int64(0), "status": "Active"}),
	},
	{
		Path: "employees", Noun: "employee", Model: &models.Employee{}, IDPrefix: "employee",
		Updatable: true, Deletable: true,
		NewPayload: func() any { return &EmployeePayload{} },
		Defaults:   setDefaults(map[string]any{"status": "Active"}),
	},
	{
		Path: "doctors", Noun: "doctor", Model: &models.Doctor{}, IDPrefix: "doctor",
		Updatable: true, Deletable: true,
		NewPayload: func() any { return &DoctorPayload{} },
		Defaults:   setDefaults(map[string]any{"availability": "Available"}),
	},
	{
		Path: "events", Noun: "event", Model: &models.Event{}, IDPrefix: "event",
		Updatable: true, Deletable: true,
		NewPayload: func() any { return &EventPayload{} },
		Defaults:   setDefaults(map[string]any{"registered_count": int64(0), "status": "Upcoming"}),
	},
	{
		Path: "tickets", Noun: "ticket", Model: &models.Ticket{}, IDPrefix: "ticket",
		Updatable: true, Deletable: true,
		NewPayload: func() any { return &TicketPayload{} },
		Defaults: func(row map[string]any, now time.Time) {
			setDefaults(map[string]any{"type": "Standard", "description": "", "discount_percentage": float64(0)})(row, now)
			setDate("start_date")(row, now)
		},
	},
	{
		Path: "ticket-sales", Noun: "ticket sale", Model: &models.TicketSale{}, IDPrefix: "sale",
		NewPayload: func() any { return &TicketSalePayload{} },
		Defaults:   setDate("date"),
	},
	{
		Path: "visitors", Noun: "visitor", Model: &models.Visitor{}, IDPrefix: "visitor",
		NewPayload: func() any { return &VisitorPayload{} },
		Defaults:   setDate("registration_date"),
	},
	{
		Path: "inventory", Noun: "inventory item", Model: &models.InventoryItem{}, IDPrefix: "item",
		Updatable: true, Deletable: true,
		NewPayload: func() any { return &InventoryPayload{} },
	},
	{
		Path: "medical-checks", Noun: "medical check", Model: &models.MedicalCheck{}, IDPrefix: "check",
		Updatable: true, Deletable: true,
		NewPayload: func() any { return &MedicalCheckPayload{} },
		Defaults:   setDefaults(map[string]any{"status": "Completed"}),
	},
	{
		Path: "vaccinations", Noun: "vaccination", Model: &models.Vaccination{}, IDPrefix: "vaccination",
		Updatable: true, Deletable: true,
		NewPayload: func() any { return &VaccinationPayload{} },
	},
}

// NewModel returns a fresh zero value of the resource's model, safe to hand
// to gorm, which writes assigned values back into it.
func (r *Resource) NewModel() any {
	return reflect.New(reflect.TypeOf(r.Model).Elem()).Interface()
}

// Lookup finds a resource by path.
func Lookup(path string) (*Resource, bool) {
	for _, r := range Registry {
		if r.Path == path {
			return r, true
		}
	}
	return nil, false
}

// GenerateID returns "<prefix>-<unix millis>".
func GenerateID(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%d", prefix, now.UnixMilli())
}

// GenerateUniqueID returns "<prefix>-<unix millis>-<8 hex chars>" for rows
// the client cannot name itself.
func GenerateUniqueID(prefix string, now time.Time) string {
	return GenerateID(prefix, now) + "-" + uuid.NewString()[:8]
}

// InsertRow turns a bound payload into the storage-case row to insert:
// absent optional fields are left out so column defaults apply, the
// resource defaults are filled and a missing id is generated.
func (r *Resource) InsertRow(payload any, now time.Time) map[string]any {
	row := Row(payload, false)
	if r.Normalize != nil {
		r.Normalize(row)
	}
	if r.Defaults != nil {
		r.Defaults(row, now)
	}
	if id, _ := row["id"].(string); id == "" {
		row["id"] = GenerateID(r.IDPrefix, now)
	}
	return row
}

// UpdateRow turns a bound payload into a full-column replacement. Absent
// optional fields become NULL. The id column is never rewritten.
func (r *Resource) UpdateRow(payload any) map[string]any {
	row := Row(payload, true)
	delete(row, "id")
	if r.Normalize != nil {
		r.Normalize(row)
	}
	return row
}

// Row flattens a payload struct into a storage-case column map. Nil pointer
// fields are included as NULL only when keepNull is set. Fields tagged
// column:"-" are never included.
func Row(payload any, keepNull bool) map[string]any {
	v := reflect.Indirect(reflect.ValueOf(payload))
	t := v.Type()

	wire := make(map[string]any, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		if field.Tag.Get("column") == "-" {
			continue
		}
		name := jsonName(field)
		if name == "" {
			continue
		}
		fv := v.Field(i)
		if fv.Kind() == reflect.Pointer {
			if fv.IsNil() {
				if keepNull {
					wire[name] = nil
				}
				continue
			}
			fv = fv.Elem()
		}
		wire[name] = fv.Interface()
	}
	return casing.MapToStorage(wire)
}

func jsonName(f reflect.StructField) string {
	if !f.IsExported() {
		return ""
	}
	tag := f.Tag.Get("json")
	if tag == "-" {
		return ""
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name
	}
	return f.Name
}

func setDefaults(values map[string]any) func(map[string]any, time.Time) {
	return func(row map[string]any, _ time.Time) {
		for k, v := range values {
			if isBlank(row[k]) {
				row[k] = v
			}
		}
	}
}

func setDate(column string) func(map[string]any, time.Time) {
	return func(row map[string]any, now time.Time) {
		if isBlank(row[column]) {
			row[column] = now.Format(DateLayout)
		}
	}
}

// nullEmpty stores an empty string in the given columns as NULL.
func nullEmpty(columns ...string) func(map[string]any) {
	return func(row map[string]any) {
		for _, c := range columns {
			if s, ok := row[c].(string); ok && s == "" {
				row[c] = nil
			}
		}
	}
}

func isBlank(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
