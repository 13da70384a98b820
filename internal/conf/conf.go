package conf

type Bootstrap struct {
	Server *Server
	Data   *Data
	Auth   *Auth
	Coach  *Coach
}

type Auth struct {
	JwtKey string `json:"jwt_key"`
}

type Server struct {
	Http *HTTP
}

type HTTP struct {
	Addr    string
	Timeout string
}

type Data struct {
	Database *Database
}

type Database struct {
	Driver string
	Source string
}

// Coach groups everything the insight engine needs: the LLM endpoint, the
// refresh policy and the optional headline search provider.
type Coach struct {
	Llm     *LLM     `json:"llm"`
	Refresh *Refresh `json:"refresh"`
	Search  *Search  `json:"search"`
	Log     *Log     `json:"log"`
}

type LLM struct {
	BaseUrl string `json:"base_url"`
	ApiKey  string `json:"api_key"`
	Model   string `json:"model"`
}

// Refresh controls the freshness window of insight records and the retry
// posture of the generator.
type Refresh struct {
	Ttl          string `json:"ttl"`           // staleness window, e.g. "168h"
	RetryBackoff string `json:"retry_backoff"` // fixed delay between rate-limit retries
	MaxRetries   int32  `json:"max_retries"`
	Cron         string `json:"cron"` // in-process schedule, empty means weekly, "off" disables it
	Rpm          int32  `json:"rpm"`  // batch pacing, requests per minute
}

type Search struct {
	Provider string   `json:"provider"` // "tavily", "searxng" or empty to disable
	Tavily   *Tavily  `json:"tavily"`
	Searxng  *SearXNG `json:"searxng"`
}

type Tavily struct {
	ApiKey string `json:"api_key"`
}

type SearXNG struct {
	BaseUrl string `json:"base_url"`
	Timeout int32  `json:"timeout"`
}

type Log struct {
	Level string `json:"level"`
	File  string `json:"file"`
}
