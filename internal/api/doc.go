// Package api provides the InsightCRM REST API.
//
//	@title						InsightCRM API
//	@version					1.0
//	@description				Customer record store with typed relationships between customers
//	@BasePath					/api/v1
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Type "Bearer" followed by a space and the access token.
package api
