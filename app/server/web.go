package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/oarkflow/date"
	"github.com/sirupsen/logrus"

	"github.com/jumpei00/gostockanalysis/app/models"
	"github.com/jumpei00/gostockanalysis/config"
	"github.com/jumpei00/gostockanalysis/stock"
	"github.com/jumpei00/gostockanalysis/utils"
)

// JSONError is json error massage
type JSONError struct {
	Error string `json:"error"`
}

func errorAPI(w http.ResponseWriter, message string, code int) {
	jsonMessage, err := json.Marshal(JSONError{Error: message})
	if err != nil {
		logrus.Warnf("error message create error: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.WriteHeader(code)
	w.Write(jsonMessage)
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	js, err := json.Marshal(v)
	if err != nil {
		logrus.Warnf("response json error: %v", err)
		errorAPI(w, "response json error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Write(js)
}

// IndexAPIHandler returns index.html contents,
// when path is "/"
func IndexAPIHandler(w http.ResponseWriter, req *http.Request) {
	temp := template.Must(template.ParseFiles("templates/index.html"))
	temp.ExecuteTemplate(w, "index.html", nil)
}

// StocksAPIHandler lists registered stocks, or registers a new one on POST,
// when path is "/stocks"
func StocksAPIHandler(w http.ResponseWriter, req *http.Request) {
	if req.Method == http.MethodPost {
		var body models.Stock
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			errorAPI(w, fmt.Sprintf("stock params error: %v", err), http.StatusBadRequest)
			return
		}
		if body.Symbol == "" {
			errorAPI(w, "bad parameter(symbol)", http.StatusBadRequest)
			return
		}

		st, err := models.CreateStock(body.Symbol, body.Name, body.Description)
		if err != nil {
			logrus.Warnf("stock create error: %v", err)
			errorAPI(w, "stock create error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, st)
		return
	}

	writeJSON(w, models.AllStocks())
}

// SearchAPIHandler looks up stocks by symbol or name,
// when path is "/search"
func SearchAPIHandler(w http.ResponseWriter, req *http.Request) {
	query := req.URL.Query().Get("q")
	if query == "" {
		errorAPI(w, "bad parameter(q)", http.StatusBadRequest)
		return
	}

	hits, err := stock.SearchStocks(query)
	if err != nil {
		logrus.Warnf("stock search error: %v", err)
		errorAPI(w, "stock search error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, hits)
}

// CandlesAPIHandler returns the price window of a symbol with the requested
// indicator columns and optional summary statistics,
// when path is "/candles"
func CandlesAPIHandler(w http.ResponseWriter, req *http.Request) {
	logrus.Infof("candle get request: url -> %s", req.URL)

	query := req.URL.Query()
	symbol := query.Get("symbol")
	if symbol == "" {
		errorAPI(w, "bad parameter(symbol)", http.StatusBadRequest)
		return
	}

	start, end, err := parseWindow(query)
	if err != nil {
		errorAPI(w, err.Error(), http.StatusBadRequest)
		return
	}

	dframe := models.NewDataFrame()
	dframe.AddPriceFrame(symbol, start, end)
	if dframe.PriceFrame == nil {
		errorAPI(w, fmt.Sprintf("unknown symbol: %v", symbol), http.StatusBadRequest)
		return
	}

	dframe.AddIndicatorFrame(indicatorConfigFromQuery(query))

	if stats, _ := strconv.ParseBool(query.Get("stats")); stats {
		dframe.AddStatsFrame()
	}
	if analyses, _ := strconv.ParseBool(query.Get("analyses")); analyses {
		dframe.AddAnalysisFrame(symbol)
	}

	writeJSON(w, dframe)
}

// UploadAPIHandler ingests a CSV body as the full price history of a symbol,
// when path is "/upload"
func UploadAPIHandler(w http.ResponseWriter, req *http.Request) {
	logrus.Infof("upload request: url -> %s", req.URL)

	symbol := req.URL.Query().Get("symbol")
	if symbol == "" {
		errorAPI(w, "bad parameter(symbol)", http.StatusBadRequest)
		return
	}
	name := req.URL.Query().Get("name")
	if name == "" {
		name = symbol
	}

	body, err := io.ReadAll(req.Body)
	if err != nil {
		errorAPI(w, "unable to read upload body", http.StatusBadRequest)
		return
	}

	if ok, reason := stock.ValidateCSV(bytes.NewReader(body)); !ok {
		errorAPI(w, reason, http.StatusBadRequest)
		return
	}

	q, err := stock.LoadCSV(bytes.NewReader(body), symbol)
	if err != nil {
		logrus.Warnf("csv load error: %v", err)
		errorAPI(w, fmt.Sprintf("csv load error: %v", err), http.StatusBadRequest)
		return
	}

	st, err := stock.Ingest(symbol, name, q)
	if err != nil {
		logrus.Warnf("ingest error: %v", err)
		errorAPI(w, "ingest error", http.StatusInternalServerError)
		return
	}
	reindexStocks()

	writeJSON(w, st)
}

// AnalysisAPIHandler saves a named indicator configuration on POST, and
// fetches one by token or lists them by symbol on GET,
// when path is "/analysis"
func AnalysisAPIHandler(w http.ResponseWriter, req *http.Request) {
	if req.Method == http.MethodPost {
		var sa models.SavedAnalysis
		if err := json.NewDecoder(req.Body).Decode(&sa); err != nil {
			errorAPI(w, fmt.Sprintf("analysis params error: %v", err), http.StatusBadRequest)
			return
		}
		if sa.Name == "" || sa.Symbol == "" {
			errorAPI(w, "bad parameter(name, symbol)", http.StatusBadRequest)
			return
		}

		if err := sa.Save(); err != nil {
			logrus.Warnf("analysis save error: %v", err)
			errorAPI(w, "analysis save error", http.StatusInternalServerError)
			return
		}
		writeJSON(w, &sa)
		return
	}

	query := req.URL.Query()
	if token := query.Get("token"); token != "" {
		sa, err := models.GetAnalysis(token)
		if err != nil {
			errorAPI(w, fmt.Sprintf("unknown analysis: %v", token), http.StatusBadRequest)
			return
		}
		writeJSON(w, sa)
		return
	}

	symbol := query.Get("symbol")
	if symbol == "" {
		errorAPI(w, "bad parameter(token, symbol)", http.StatusBadRequest)
		return
	}

	dframe := models.NewDataFrame()
	dframe.AddAnalysisFrame(symbol)
	writeJSON(w, dframe)
}

// AnalysisDeleteAPIHandler removes a saved analysis by token,
// when path is "/analysis/delete"
func AnalysisDeleteAPIHandler(w http.ResponseWriter, req *http.Request) {
	var body struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil || body.Token == "" {
		errorAPI(w, "bad parameter(token)", http.StatusBadRequest)
		return
	}

	if err := models.DeleteAnalysis(body.Token); err != nil {
		logrus.Warnf("analysis delete error: %v", err)
		errorAPI(w, "analysis delete error", http.StatusInternalServerError)
		return
	}

	writeJSON(w, map[string]string{"deleted": body.Token})
}

// ExportAPIHandler computes the same frame as "/candles" and writes it as a
// CSV file, or returns it gzip+base64 inline with gzip=true,
// when path is "/export"
func ExportAPIHandler(w http.ResponseWriter, req *http.Request) {
	logrus.Infof("export request: url -> %s", req.URL)

	query := req.URL.Query()
	symbol := query.Get("symbol")
	if symbol == "" {
		errorAPI(w, "bad parameter(symbol)", http.StatusBadRequest)
		return
	}

	start, end, err := parseWindow(query)
	if err != nil {
		errorAPI(w, err.Error(), http.StatusBadRequest)
		return
	}

	dframe := models.NewDataFrame()
	dframe.AddPriceFrame(symbol, start, end)
	if dframe.PriceFrame == nil {
		errorAPI(w, fmt.Sprintf("unknown symbol: %v", symbol), http.StatusBadRequest)
		return
	}
	dframe.AddIndicatorFrame(indicatorConfigFromQuery(query))

	if gz, _ := strconv.ParseBool(query.Get("gzip")); gz {
		header, rows := stock.FrameRows(dframe)
		lines := make([]string, 0, len(rows)+1)
		lines = append(lines, strings.Join(header, ","))
		for _, row := range rows {
			lines = append(lines, strings.Join(row, ","))
		}
		writeJSON(w, map[string]string{
			"content": utils.ToCompressedString([]byte(strings.Join(lines, "\n"))),
		})
		return
	}

	path, err := stock.ExportFrame(config.Config.ExportDir, dframe)
	if err != nil {
		logrus.Warnf("export error: %v", err)
		errorAPI(w, "export error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, map[string]string{"path": path})
}

// parseWindow reads the optional start/end date parameters and converts them
// to the unix ms bounds of the price window; 0 means unbounded
func parseWindow(query url.Values) (int64, int64, error) {
	var start, end int64

	if s := query.Get("start"); s != "" {
		t, err := date.Parse(s)
		if err != nil {
			return 0, 0, fmt.Errorf("bad parameter(start)")
		}
		start = t.Unix() * 1000
	}
	if e := query.Get("end"); e != "" {
		t, err := date.Parse(e)
		if err != nil {
			return 0, 0, fmt.Errorf("bad parameter(end)")
		}
		end = t.Unix() * 1000
	}

	return start, end, nil
}

// indicatorConfigFromQuery reads the indicator selections:
// ma=5,20  rsi=14  macd=12,26,9  bb=20,2  atr=14
func indicatorConfigFromQuery(query url.Values) models.IndicatorConfig {
	cfg := models.IndicatorConfig{}

	if ma := query.Get("ma"); ma != "" {
		cfg.MAPeriods = models.ParsePeriods(ma)
	}
	if rsi := query.Get("rsi"); rsi != "" {
		cfg.RSIPeriod, _ = strconv.Atoi(rsi)
	}
	if macd := query.Get("macd"); macd != "" {
		parts := strings.Split(macd, ",")
		if len(parts) == 3 {
			cfg.MacdFast, _ = strconv.Atoi(parts[0])
			cfg.MacdSlow, _ = strconv.Atoi(parts[1])
			cfg.MacdSignal, _ = strconv.Atoi(parts[2])
		}
	}
	if bb := query.Get("bb"); bb != "" {
		parts := strings.Split(bb, ",")
		cfg.BBPeriod, _ = strconv.Atoi(parts[0])
		cfg.BBStd = 2.0
		if len(parts) > 1 {
			if std, err := strconv.ParseFloat(parts[1], 64); err == nil {
				cfg.BBStd = std
			}
		}
	}
	if atr := query.Get("atr"); atr != "" {
		cfg.ATRPeriod, _ = strconv.Atoi(atr)
	}

	return cfg
}

func reindexStocks() {
	var docs []map[string]any
	for _, st := range models.AllStocks() {
		docs = append(docs, map[string]any{"Symbol": st.Symbol, "Name": st.Name})
	}
	if err := stock.IndexStocks(docs); err != nil {
		logrus.Warnf("stock reindex error: %v", err)
	}
}

// Run starts webserver
func Run() {
	logrus.Info("server start")
	fs := http.FileServer(http.Dir("./static"))
	http.Handle("/static/", http.StripPrefix("/static/", fs))
	http.HandleFunc("/", IndexAPIHandler)
	http.HandleFunc("/stocks", StocksAPIHandler)
	http.HandleFunc("/search", SearchAPIHandler)
	http.HandleFunc("/candles", CandlesAPIHandler)
	http.HandleFunc("/upload", UploadAPIHandler)
	http.HandleFunc("/analysis", AnalysisAPIHandler)
	http.HandleFunc("/analysis/delete", AnalysisDeleteAPIHandler)
	http.HandleFunc("/export", ExportAPIHandler)
	logrus.Fatalln(http.ListenAndServe(fmt.Sprintf(":%d", config.Config.Port), nil))
}
