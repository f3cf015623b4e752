// @title           tipjar API
// @version         1.0
// @description     Backend for a creator support platform (Swagger documentation).
// @contact.name    tipjar
// @contact.email   support@tipjar.dev
// @license.name    MIT
// @license.url     https://opensource.org/licenses/MIT
// @host            localhost:4000
// @BasePath        /

package main

import "tipjar_backend/internal/app"

func main() {
	app.Run()
}
