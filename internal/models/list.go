package models

// ListParams — базовые параметры постраничной выдачи.
// PageToken — непрозрачный курсор (created_at, _id) из предыдущей страницы.
type ListParams struct {
	PageSize  int32
	PageToken string
}
