package catalog

import "errors"

var ErrNotFound = errors.New("department not found")

// Department is a course offering shown to applicants.
type Department struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Image       string `json:"image"`
}

// departments is the static offering catalog.
var departments = []Department{
	{ID: "1", Name: "Computer Science Engineering", Description: "Advanced computing, software development, and emerging technologies", Image: "https://images.pexels.com/photos/574071/pexels-photo-574071.jpeg"},
	{ID: "2", Name: "Information Technology", Description: "IT systems, network management, and digital infrastructure", Image: "https://images.pexels.com/photos/325111/pexels-photo-325111.jpeg"},
	{ID: "3", Name: "Electronics & Communication", Description: "Electronic systems, telecommunications, and signal processing", Image: "https://images.pexels.com/photos/163100/circuit-circuit-board-resistor-computer-163100.jpeg"},
	{ID: "4", Name: "Mechanical Engineering", Description: "Machine design, manufacturing, and mechanical systems", Image: "https://images.pexels.com/photos/162553/keys-workshop-mechanic-tools-162553.jpeg"},
	{ID: "5", Name: "Civil Engineering", Description: "Infrastructure development, construction, and urban planning", Image: "https://images.pexels.com/photos/416405/pexels-photo-416405.jpeg"},
	{ID: "6", Name: "Electrical Engineering", Description: "Power systems, electrical design, and renewable energy", Image: "https://images.pexels.com/photos/257736/pexels-photo-257736.jpeg"},
	{ID: "7", Name: "Business Administration", Description: "Management principles, business strategy, and leadership", Image: "https://images.pexels.com/photos/3184292/pexels-photo-3184292.jpeg"},
	{ID: "8", Name: "Master of Commerce", Description: "Advanced accounting, finance, and business analytics", Image: "https://images.pexels.com/photos/210574/pexels-photo-210574.jpeg"},
	{ID: "9", Name: "Arts & Science", Description: "Liberal arts education with interdisciplinary approach", Image: "https://images.pexels.com/photos/207692/pexels-photo-207692.jpeg"},
	{ID: "10", Name: "Data Science", Description: "Big data analytics, machine learning, and statistical modeling", Image: "https://images.pexels.com/photos/590022/pexels-photo-590022.jpeg"},
	{ID: "11", Name: "Biotechnology", Description: "Biological sciences, genetic engineering, and medical research", Image: "https://images.pexels.com/photos/2280549/pexels-photo-2280549.jpeg"},
	{ID: "12", Name: "Aerospace Engineering", Description: "Aircraft design, space technology, and aerodynamics", Image: "https://images.pexels.com/photos/355935/pexels-photo-355935.jpeg"},
}

// List returns the catalog in display order.
func List() []Department {
	out := make([]Department, len(departments))
	copy(out, departments)
	return out
}

// Get returns the department with the given id.
func Get(id string) (Department, error) {
	for _, d := range departments {
		if d.ID == id {
			return d, nil
		}
	}
	return Department{}, ErrNotFound
}

// Exists reports whether name matches a catalog entry. Free-text
// departments are still accepted at booking; this only informs the caller.
func Exists(name string) bool {
	for _, d := range departments {
		if d.Name == name {
			return true
		}
	}
	return false
}
