package domain

type Todo struct {
	ID        string `json:"id" db:"id"`
	Title     string `json:"title" db:"title"`
	Completed bool   `json:"completed" db:"completed"`
}

func NewTodo(id string, title string) Todo {
	return Todo{ID: id, Title: title, Completed: false}
}

func (t *Todo) MarkCompleted() {
	t.Completed = true
}
