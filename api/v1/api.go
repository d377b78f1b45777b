// Package api holds the wire types and the router for openapi.yaml.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/oapi-codegen/runtime"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type Notice struct {
	Id       int    `json:"id"`
	Title    string `json:"title"`
	Author   string `json:"author"`
	Date     string `json:"date"`
	Views    int    `json:"views"`
	Category string `json:"category"`
	Content  string `json:"content"`
}

type NewNotice struct {
	Title    string `json:"title"`
	Author   string `json:"author,omitempty"`
	Date     string `json:"date,omitempty"`
	Category string `json:"category,omitempty"`
	Content  string `json:"content,omitempty"`
}

type NoticePage struct {
	Items    []Notice `json:"items"`
	Page     int      `json:"page"`
	PageSize int      `json:"pageSize"`
	Total    int      `json:"total"`
}

type Equipment struct {
	Id        int    `json:"id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Usage     int    `json:"usage"`
	Remaining string `json:"remaining"`
	LastCheck string `json:"lastCheck"`
}

type NewEquipment struct {
	Name      string  `json:"name"`
	Status    string  `json:"status,omitempty"`
	Usage     float64 `json:"usage,omitempty"`
	Remaining string  `json:"remaining,omitempty"`
	LastCheck string  `json:"lastCheck,omitempty"`
}

type EquipmentPatch struct {
	Name      *string  `json:"name,omitempty"`
	Status    *string  `json:"status,omitempty"`
	Usage     *float64 `json:"usage,omitempty"`
	Remaining *string  `json:"remaining,omitempty"`
	LastCheck *string  `json:"lastCheck,omitempty"`
}

type EquipmentStatusUpdate struct {
	Status string `json:"status"`
}

type EquipmentPage struct {
	Items    []Equipment `json:"items"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
	Total    int         `json:"total"`
}

type Part struct {
	Id            int    `json:"id"`
	Name          string `json:"name"`
	PartNo        string `json:"partNo"`
	Equipment     string `json:"equipment"`
	Type          string `json:"type"`
	UnitPrice     int    `json:"unitPrice"`
	TotalQty      int    `json:"totalQty"`
	UsedQty       int    `json:"usedQty"`
	RemainQty     int    `json:"remainQty"`
	FirstShipDate string `json:"firstShipDate"`
	Stock         string `json:"stock"`
}

type NewPart struct {
	Name          string `json:"name"`
	PartNo        string `json:"partNo"`
	Equipment     string `json:"equipment"`
	Type          string `json:"type,omitempty"`
	UnitPrice     int    `json:"unitPrice,omitempty"`
	TotalQty      int    `json:"totalQty,omitempty"`
	UsedQty       int    `json:"usedQty,omitempty"`
	RemainQty     *int   `json:"remainQty,omitempty"`
	FirstShipDate string `json:"firstShipDate,omitempty"`
}

type PartQtyUpdate struct {
	UsedQty  int  `json:"usedQty"`
	TotalQty *int `json:"totalQty,omitempty"`
}

type PartPage struct {
	Items    []Part `json:"items"`
	Page     int    `json:"page"`
	PageSize int    `json:"pageSize"`
	Total    int    `json:"total"`
}

type InspectionLog struct {
	Id           int    `json:"id"`
	Equipment    string `json:"equipment"`
	StartDate    string `json:"startDate"`
	Institution  string `json:"institution"`
	User         string `json:"user"`
	UseStartDate string `json:"useStartDate"`
	UseEndDate   string `json:"useEndDate"`
	Registrant   string `json:"registrant"`
	Purpose      string `json:"purpose"`
}

type NewInspectionLog struct {
	Equipment    string `json:"equipment"`
	StartDate    string `json:"startDate,omitempty"`
	Institution  string `json:"institution"`
	User         string `json:"user"`
	UseStartDate string `json:"useStartDate,omitempty"`
	UseEndDate   string `json:"useEndDate,omitempty"`
	Registrant   string `json:"registrant,omitempty"`
	Purpose      string `json:"purpose,omitempty"`
}

type InspectionLogPage struct {
	Items    []InspectionLog `json:"items"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
	Total    int             `json:"total"`
}

type OperationLog struct {
	Id         int    `json:"id"`
	Equipment  string `json:"equipment"`
	StartDate  string `json:"startDate"`
	EndDate    string `json:"endDate"`
	UseTime    string `json:"useTime"`
	Activity   string `json:"activity"`
	ActualUser string `json:"actualUser"`
}

type NewOperationLog struct {
	Equipment  string `json:"equipment"`
	StartDate  string `json:"startDate,omitempty"`
	EndDate    string `json:"endDate,omitempty"`
	UseTime    string `json:"useTime,omitempty"`
	Activity   string `json:"activity,omitempty"`
	ActualUser string `json:"actualUser"`
}

type OperationLogPage struct {
	Items    []OperationLog `json:"items"`
	Page     int            `json:"page"`
	PageSize int            `json:"pageSize"`
	Total    int            `json:"total"`
}

type ImportFailure struct {
	Id        int       `json:"id"`
	Filename  string    `json:"filename"`
	Error     string    `json:"error"`
	CreatedAt time.Time `json:"createdAt"`
}

type ImportFailurePage struct {
	Items    []ImportFailure `json:"items"`
	Page     int             `json:"page"`
	PageSize int             `json:"pageSize"`
	Total    int             `json:"total"`
}

type StatusCount struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Standby  int `json:"standby"`
	Inactive int `json:"inactive"`
}

type Dashboard struct {
	Equipment       StatusCount `json:"equipment"`
	LowStockParts   int         `json:"lowStockParts"`
	RecentEquipment []Equipment `json:"recentEquipment"`
	RecentParts     []Part      `json:"recentParts"`
	RecentNotices   []Notice    `json:"recentNotices"`
}

type TableHeader struct {
	Id     string `json:"id"`
	Header string `json:"header"`
	Align  string `json:"align"`
}

type TableView struct {
	Entity     string        `json:"entity"`
	Breakpoint string        `json:"breakpoint"`
	Headers    []TableHeader `json:"headers"`
	Rows       [][]string    `json:"rows"`
	Empty      bool          `json:"empty"`
	EmptyText  string        `json:"emptyText"`
	Page       int           `json:"page"`
	PageSize   int           `json:"pageSize"`
	Total      int           `json:"total"`
}

// ListParams - общие параметры всех списков.
type ListParams struct {
	Page     *int    `form:"page,omitempty" json:"page,omitempty"`
	PageSize *int    `form:"pageSize,omitempty" json:"pageSize,omitempty"`
	Q        *string `form:"q,omitempty" json:"q,omitempty"`
	Target   *string `form:"target,omitempty" json:"target,omitempty"`
}

type GetTableParams struct {
	ListParams
	Viewport *string `form:"viewport,omitempty" json:"viewport,omitempty"`
	Width    *int    `form:"width,omitempty" json:"width,omitempty"`
}

type ExportEntityParams struct {
	Q      *string `form:"q,omitempty" json:"q,omitempty"`
	Target *string `form:"target,omitempty" json:"target,omitempty"`
	Format *string `form:"format,omitempty" json:"format,omitempty"`
}

// ServerInterface represents all server handlers.
type ServerInterface interface {
	// (GET /api/v1/dashboard)
	GetDashboard(w http.ResponseWriter, r *http.Request)
	// (GET /api/v1/notices)
	ListNotices(w http.ResponseWriter, r *http.Request, params ListParams)
	// (POST /api/v1/notices)
	CreateNotice(w http.ResponseWriter, r *http.Request)
	// (GET /api/v1/notices/{id})
	GetNotice(w http.ResponseWriter, r *http.Request, id int)
	// (POST /api/v1/notices/{id}/views)
	IncreaseNoticeViews(w http.ResponseWriter, r *http.Request, id int)
	// (GET /api/v1/equipment)
	ListEquipment(w http.ResponseWriter, r *http.Request, params ListParams)
	// (POST /api/v1/equipment)
	CreateEquipment(w http.ResponseWriter, r *http.Request)
	// (PATCH /api/v1/equipment/{id})
	UpdateEquipment(w http.ResponseWriter, r *http.Request, id int)
	// (PUT /api/v1/equipment/{id}/status)
	UpdateEquipmentStatus(w http.ResponseWriter, r *http.Request, id int)
	// (GET /api/v1/parts)
	ListParts(w http.ResponseWriter, r *http.Request, params ListParams)
	// (POST /api/v1/parts)
	CreatePart(w http.ResponseWriter, r *http.Request)
	// (PATCH /api/v1/parts/{id}/qty)
	UpdatePartQty(w http.ResponseWriter, r *http.Request, id int)
	// (GET /api/v1/inspections)
	ListInspectionLogs(w http.ResponseWriter, r *http.Request, params ListParams)
	// (POST /api/v1/inspections)
	CreateInspectionLog(w http.ResponseWriter, r *http.Request)
	// (GET /api/v1/operations)
	ListOperationLogs(w http.ResponseWriter, r *http.Request, params ListParams)
	// (POST /api/v1/operations)
	CreateOperationLog(w http.ResponseWriter, r *http.Request)
	// (GET /api/v1/imports/errors)
	ListImportFailures(w http.ResponseWriter, r *http.Request, params ListParams)
	// (GET /api/v1/tables/{entity})
	GetTable(w http.ResponseWriter, r *http.Request, entity string, params GetTableParams)
	// (GET /api/v1/exports/{entity})
	ExportEntity(w http.ResponseWriter, r *http.Request, entity string, params ExportEntityParams)
	// (POST /api/v1/admin/reset)
	ResetStore(w http.ResponseWriter, r *http.Request)
}

type MiddlewareFunc func(http.Handler) http.Handler

// InvalidParamFormatError is passed to ErrorHandlerFunc when a parameter does not bind.
type InvalidParamFormatError struct {
	ParamName string
	Err       error
}

func (e *InvalidParamFormatError) Error() string {
	return fmt.Sprintf("Invalid format for parameter %s: %s", e.ParamName, e.Err.Error())
}

func (e *InvalidParamFormatError) Unwrap() error {
	return e.Err
}

type ServeMux interface {
	HandleFunc(pattern string, handler func(http.ResponseWriter, *http.Request))
	ServeHTTP(w http.ResponseWriter, r *http.Request)
}

type StdHTTPServerOptions struct {
	BaseURL          string
	BaseRouter       ServeMux
	Middlewares      []MiddlewareFunc
	ErrorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

type serverInterfaceWrapper struct {
	handler          ServerInterface
	middlewares      []MiddlewareFunc
	errorHandlerFunc func(w http.ResponseWriter, r *http.Request, err error)
}

func (siw *serverInterfaceWrapper) serve(w http.ResponseWriter, r *http.Request, h http.Handler) {
	for _, middleware := range siw.middlewares {
		h = middleware(h)
	}
	h.ServeHTTP(w, r)
}

func (siw *serverInterfaceWrapper) plain(call func(ServerInterface, http.ResponseWriter, *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			call(siw.handler, w, r)
		}))
	}
}

func (siw *serverInterfaceWrapper) withID(call func(ServerInterface, http.ResponseWriter, *http.Request, int)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var id int
		err := runtime.BindStyledParameterWithOptions("simple", "id", r.PathValue("id"), &id,
			runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
		if err != nil {
			siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "id", Err: err})
			return
		}
		siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			call(siw.handler, w, r, id)
		}))
	}
}

func bindListParams(r *http.Request, params *ListParams) error {
	query := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "page", query, &params.Page); err != nil {
		return &InvalidParamFormatError{ParamName: "page", Err: err}
	}
	if err := runtime.BindQueryParameter("form", true, false, "pageSize", query, &params.PageSize); err != nil {
		return &InvalidParamFormatError{ParamName: "pageSize", Err: err}
	}
	if err := runtime.BindQueryParameter("form", true, false, "q", query, &params.Q); err != nil {
		return &InvalidParamFormatError{ParamName: "q", Err: err}
	}
	if err := runtime.BindQueryParameter("form", true, false, "target", query, &params.Target); err != nil {
		return &InvalidParamFormatError{ParamName: "target", Err: err}
	}
	return nil
}

func (siw *serverInterfaceWrapper) list(call func(ServerInterface, http.ResponseWriter, *http.Request, ListParams)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var params ListParams
		if err := bindListParams(r, &params); err != nil {
			siw.errorHandlerFunc(w, r, err)
			return
		}
		siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			call(siw.handler, w, r, params)
		}))
	}
}

func bindEntity(r *http.Request) (string, error) {
	var entity string
	err := runtime.BindStyledParameterWithOptions("simple", "entity", r.PathValue("entity"), &entity,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return "", &InvalidParamFormatError{ParamName: "entity", Err: err}
	}
	return entity, nil
}

func (siw *serverInterfaceWrapper) GetTable(w http.ResponseWriter, r *http.Request) {
	entity, err := bindEntity(r)
	if err != nil {
		siw.errorHandlerFunc(w, r, err)
		return
	}
	var params GetTableParams
	if err := bindListParams(r, &params.ListParams); err != nil {
		siw.errorHandlerFunc(w, r, err)
		return
	}
	query := r.URL.Query()
	if err := runtime.BindQueryParameter("form", true, false, "viewport", query, &params.Viewport); err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "viewport", Err: err})
		return
	}
	if err := runtime.BindQueryParameter("form", true, false, "width", query, &params.Width); err != nil {
		siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: "width", Err: err})
		return
	}
	siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.handler.GetTable(w, r, entity, params)
	}))
}

func (siw *serverInterfaceWrapper) ExportEntity(w http.ResponseWriter, r *http.Request) {
	entity, err := bindEntity(r)
	if err != nil {
		siw.errorHandlerFunc(w, r, err)
		return
	}
	var params ExportEntityParams
	query := r.URL.Query()
	for name, dest := range map[string]**string{"q": &params.Q, "target": &params.Target, "format": &params.Format} {
		if err := runtime.BindQueryParameter("form", true, false, name, query, dest); err != nil {
			siw.errorHandlerFunc(w, r, &InvalidParamFormatError{ParamName: name, Err: err})
			return
		}
	}
	siw.serve(w, r, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		siw.handler.ExportEntity(w, r, entity, params)
	}))
}

// Handler creates http.Handler with routing matching OpenAPI spec.
func Handler(si ServerInterface) http.Handler {
	return HandlerWithOptions(si, StdHTTPServerOptions{})
}

// HandlerWithOptions creates http.Handler with additional options.
func HandlerWithOptions(si ServerInterface, options StdHTTPServerOptions) http.Handler {
	m := options.BaseRouter
	if m == nil {
		m = http.NewServeMux()
	}
	if options.ErrorHandlerFunc == nil {
		options.ErrorHandlerFunc = func(w http.ResponseWriter, r *http.Request, err error) {
			http.Error(w, err.Error(), http.StatusBadRequest)
		}
	}

	siw := &serverInterfaceWrapper{
		handler:          si,
		middlewares:      options.Middlewares,
		errorHandlerFunc: options.ErrorHandlerFunc,
	}
	base := options.BaseURL + "/api/v1"

	m.HandleFunc("GET "+base+"/dashboard", siw.plain(ServerInterface.GetDashboard))
	m.HandleFunc("GET "+base+"/notices", siw.list(ServerInterface.ListNotices))
	m.HandleFunc("POST "+base+"/notices", siw.plain(ServerInterface.CreateNotice))
	m.HandleFunc("GET "+base+"/notices/{id}", siw.withID(ServerInterface.GetNotice))
	m.HandleFunc("POST "+base+"/notices/{id}/views", siw.withID(ServerInterface.IncreaseNoticeViews))
	m.HandleFunc("GET "+base+"/equipment", siw.list(ServerInterface.ListEquipment))
	m.HandleFunc("POST "+base+"/equipment", siw.plain(ServerInterface.CreateEquipment))
	m.HandleFunc("PATCH "+base+"/equipment/{id}", siw.withID(ServerInterface.UpdateEquipment))
	m.HandleFunc("PUT "+base+"/equipment/{id}/status", siw.withID(ServerInterface.UpdateEquipmentStatus))
	m.HandleFunc("GET "+base+"/parts", siw.list(ServerInterface.ListParts))
	m.HandleFunc("POST "+base+"/parts", siw.plain(ServerInterface.CreatePart))
	m.HandleFunc("PATCH "+base+"/parts/{id}/qty", siw.withID(ServerInterface.UpdatePartQty))
	m.HandleFunc("GET "+base+"/inspections", siw.list(ServerInterface.ListInspectionLogs))
	m.HandleFunc("POST "+base+"/inspections", siw.plain(ServerInterface.CreateInspectionLog))
	m.HandleFunc("GET "+base+"/operations", siw.list(ServerInterface.ListOperationLogs))
	m.HandleFunc("POST "+base+"/operations", siw.plain(ServerInterface.CreateOperationLog))
	m.HandleFunc("GET "+base+"/imports/errors", siw.list(ServerInterface.ListImportFailures))
	m.HandleFunc("GET "+base+"/tables/{entity}", siw.GetTable)
	m.HandleFunc("GET "+base+"/exports/{entity}", siw.ExportEntity)
	m.HandleFunc("POST "+base+"/admin/reset", siw.plain(ServerInterface.ResetStore))

	return m
}
