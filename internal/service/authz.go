package service

import "fmt"

// assertOwner проверяет, что мутацию запрашивает владелец ресурса.
// Вызывается до любых загрузок: чужой запрос не должен успеть
// создать объекты, требующие компенсации.
func assertOwner(op, ownerID, requesterID string) error {
	if ownerID != requesterID {
		return fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	return nil
}
