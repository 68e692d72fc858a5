package handlers

import (
	userRepoPkg "bookcircle/database/repository/user"
)

// HandlerBundle groups all endpoint handlers into one struct.
type HandlerBundle struct {
	UserRepo userRepoPkg.UserRepository

	UserHandler    *UserHandler
	SocietyHandler *SocietyHandler
	BookHandler    *BookHandler
	RentalHandler  *RentalHandler
	AdminHandler   *AdminHandler
}
