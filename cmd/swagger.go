// Package main
//
// @title           Pizzeria API
// @version         1.0
// @description     PIX payment codes for pizzeria orders and store operating hours.
// @BasePath        /v1
//
// @securityDefinitions.apikey BearerAuth
// @in              header
// @name            Authorization
// @description Type "Bearer {token}" to authenticate.
package main
