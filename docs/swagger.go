package docs

// @title           SafeRide API
// @version         1.0
// @description     SafeRide backend: emergency alerts with proximity-based delivery, community chat, driver profiles and device binding. Supports WebSocket connections for live broadcast events.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:8000
// @BasePath  /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
