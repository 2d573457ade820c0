package create_reservation

import "fmt"

// validateRequest проверяет входные данные запроса
func validateRequest(req *Request) error {
	if req.RoomID <= 0 {
		return fmt.Errorf("%w: room_id must be positive", ErrInvalidInput)
	}

	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", ErrInvalidInput)
	}

	if !req.StartDate.Before(req.EndDate) {
		return fmt.Errorf("%w: start_date must be before end_date", ErrInvalidInput)
	}

	if req.StudentID != nil && *req.StudentID <= 0 {
		return fmt.Errorf("%w: student_id must be positive", ErrInvalidInput)
	}

	return nil
}
