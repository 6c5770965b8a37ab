// Package adminapi exposes the CRM service over the admin REST API.
package adminapi

import "sync"

var registerOnce sync.Once

// Init registers every admin api route with the webserver route table.
// It must run before webserver.NewAdminServer.
func Init() {
	registerOnce.Do(func() {
		registerCustomerRoutes()
		registerProductRoutes()
		registerOrderRoutes()
	})
}
