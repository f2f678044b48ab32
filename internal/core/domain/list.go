package domain

// List is a named, ordered collection of todos. A list owns its todos: deleting
// the list deletes every todo in it.
type List struct {
	ID    string `json:"id" db:"id"`
	Title string `json:"title" db:"title"`
	Todos []Todo `json:"todos"`
}

// ListSummary is what a list overview shows next to each title.
type ListSummary struct {
	Remaining int
	Total     int
	Completed bool
}

func NewList(id string, title string) List {
	return List{ID: id, Title: title, Todos: []Todo{}}
}

func (l *List) TodoCount() int {
	return len(l.Todos)
}

// FindTodo returns a pointer into l.Todos so callers can mutate in place.
func (l *List) FindTodo(id string) (*Todo, bool) {
	for i := range l.Todos {
		if l.Todos[i].ID == id {
			return &l.Todos[i], true
		}
	}

	return nil, false
}

func (l *List) RemoveTodo(id string) bool {
	for i := range l.Todos {
		if l.Todos[i].ID == id {
			l.Todos = append(l.Todos[:i], l.Todos[i+1:]...)
			return true
		}
	}

	return false
}
