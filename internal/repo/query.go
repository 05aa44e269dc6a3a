package repo

// Направления сортировки, совпадают со значениями query-параметра.
const (
	SortAsc  = "Asc"
	SortDesc = "Desc"
)

// ListOptions — общие параметры листинга: одиночная сортировка по
// фиксированному набору ключей плюс страничная нарезка.
// Page и PageSize валидируются на границе (>=1), движок им доверяет.
type ListOptions struct {
	SortKey  string
	SortDir  string // SortAsc | SortDesc
	Page     int
	PageSize int
}

func (o ListOptions) offset() int {
	return (o.Page - 1) * o.PageSize
}

// orderClause сопоставляет ключ сортировки с колонкой. Неизвестный ключ или
// направление — тихий no-op: порядок остаётся «естественным» для хранилища.
func orderClause(columns map[string]string, key, dir string) (string, bool) {
	col, ok := columns[key]
	if !ok {
		return "", false
	}
	switch dir {
	case SortAsc:
		return col + " ASC", true
	case SortDesc:
		return col + " DESC", true
	}
	return "", false
}
