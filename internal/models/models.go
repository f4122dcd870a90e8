package models

// CreateReservationRequest - запрос на создание бронирования места
type CreateReservationRequest struct {
	UserID              int64  `json:"user_id" binding:"required"`
	TripID              int64  `json:"trip_id" binding:"required"`
	SeatID              int64  `json:"seat_id" binding:"required"`
	PriceCents          int64  `json:"price_cents" binding:"required"`
	PaymentMethod       string `json:"payment_method"`
	PurchaseImmediately bool   `json:"purchase_immediately"`
}

// CreateReservationResponse - модель ответа при создании бронирования
type CreateReservationResponse struct {
	ID            int64  `json:"id"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

// CancelReservationRequest - запрос на отмену бронирования
type CancelReservationRequest struct {
	ReservationID int64   `json:"reservation_id" binding:"required"`
	ReasonID      *int64  `json:"reason_id,omitempty"`
	ReasonNote    *string `json:"reason_note,omitempty"`
	Actor         string  `json:"actor,omitempty"`
}

// CompletePaymentRequest - запрос на завершение платежа
type CompletePaymentRequest struct {
	ReservationID int64  `json:"reservation_id" binding:"required"`
	AmountCents   int64  `json:"amount_cents" binding:"required"`
	Method        string `json:"method" binding:"required"`
}

// ListReservationsResponseItem - элемент списка бронирований пользователя
type ListReservationsResponseItem struct {
	ID            int64  `json:"id"`
	TripID        int64  `json:"trip_id"`
	SeatID        int64  `json:"seat_id"`
	PriceCents    int64  `json:"price_cents"`
	Status        string `json:"status"`
	PaymentStatus string `json:"payment_status"`
}

// ListReservationsResponse - список бронирований
type ListReservationsResponse []ListReservationsResponseItem

// ListSeatsResponseItem - элемент списка свободных мест
type ListSeatsResponseItem struct {
	ID     int64  `json:"id"`
	Wagon  int    `json:"wagon"`
	Number int    `json:"number"`
	Label  string `json:"label"`
}

// ListSeatsResponse - список свободных мест
type ListSeatsResponse []ListSeatsResponseItem

// ProcessTimeoutsResponse - результат прохода sweeper'а
type ProcessTimeoutsResponse struct {
	Cancelled int `json:"cancelled"`
}

// SettingsResponse - текущие настройки движка
type SettingsResponse struct {
	TimeoutMinutes int `json:"timeout_minutes"`
}

// UpdateSettingsRequest - запрос на изменение таймаута оплаты
type UpdateSettingsRequest struct {
	TimeoutMinutes int `json:"timeout_minutes" binding:"required"`
}
