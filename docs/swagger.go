// Package docs TaskNest API
//
// @title  TaskNest API
// @version 0.1.0
// @description Per-user task CRUD behind bearer-token auth.
// @host      localhost:8080
// @BasePath /
// @schemes http https
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
package docs

import (
	_ "tasknest/cmd/server/handlers/httperr"
	_ "tasknest/internal/services/auth"
	_ "tasknest/internal/services/tasks"
)
