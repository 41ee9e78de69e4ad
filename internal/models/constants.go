package models

const (
	DeliveryTypeDelivery = "delivery"
	DeliveryTypeLocal    = "local"

	OrderStatusPlaced = "placed"

	HoursStatusOpen        = "Aberto"
	HoursStatusClosed      = "Fechado"
	HoursStatusClosedToday = "Fechado Hoje"
)
