package main

import "hotel-manager/commands"

// @title                       Hotel Manager API
// @version                     1.0
// @description                 Clients, rooms and reservations for a single hotel.
// @BasePath                    /api/v1
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	commands.Execute()
}
