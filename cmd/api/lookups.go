package main

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"tourdash/internal/domain/companies"
)

var errMissingIDs = errors.New("ids query parameter is required")

func queryIDs(r *http.Request) []string {
	var ids []string
	for _, v := range r.URL.Query()["ids"] {
		for _, id := range strings.Split(v, ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}

// LookupActivities godoc
//
//	@Summary		Resolve activities
//	@Tags			Lookups
//	@Produce		json
//	@Param			ids	query		string	true	"Comma separated activity ids"
//	@Success		200	{array}		activities.Activity
//	@Failure		400	{object}	error	"Bad Request"
//	@Failure		500	{object}	error	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/lookups/activities [get]
func (app *application) lookupActivitiesHandler(w http.ResponseWriter, r *http.Request) {
	ids := queryIDs(r)
	if len(ids) == 0 {
		app.badRequestResponse(w, r, errMissingIDs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	list, err := app.store.Activities.Resolve(ctx, ids)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// LookupProviders godoc
//
//	@Summary		Resolve providers
//	@Tags			Lookups
//	@Produce		json
//	@Param			ids	query		string	true	"Comma separated provider ids"
//	@Success		200	{array}		providers.Provider
//	@Failure		400	{object}	error	"Bad Request"
//	@Failure		500	{object}	error	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/lookups/providers [get]
func (app *application) lookupProvidersHandler(w http.ResponseWriter, r *http.Request) {
	ids := queryIDs(r)
	if len(ids) == 0 {
		app.badRequestResponse(w, r, errMissingIDs)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	list, err := app.store.Providers.Resolve(ctx, ids)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if err := app.jsonResponse(w, http.StatusOK, list); err != nil {
		app.internalServerError(w, r, err)
	}
}

// LookupEmployees godoc
//
//	@Summary		All employees keyed by id
//	@Tags			Lookups
//	@Produce		json
//	@Success		200	{object}	map[string]employees.Employee
//	@Failure		500	{object}	error	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/lookups/employees [get]
func (app *application) lookupEmployeesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	staff, err := app.store.Employees.All(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if err := app.jsonResponse(w, http.StatusOK, staff); err != nil {
		app.internalServerError(w, r, err)
	}
}

// LookupCompanies godoc
//
//	@Summary		All companies keyed by id
//	@Tags			Lookups
//	@Produce		json
//	@Success		200	{object}	map[string]companies.Company
//	@Failure		500	{object}	error	"Internal Server Error"
//	@Security		ApiKeyAuth
//	@Router			/lookups/companies [get]
func (app *application) lookupCompaniesHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	cos, err := app.store.Companies.All(ctx)
	if err != nil {
		app.internalServerError(w, r, err)
		return
	}
	if company := companyScope(r); company != "" {
		scoped := make(map[string]companies.Company, 1)
		if c, ok := cos[company]; ok {
			scoped[company] = c
		}
		cos = scoped
	}
	if err := app.jsonResponse(w, http.StatusOK, cos); err != nil {
		app.internalServerError(w, r, err)
	}
}
