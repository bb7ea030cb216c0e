package options

// Options is the canonical, fully validated configuration handed to the
// rest of the program. Field groups follow the catalogue groups.
type Options struct {
	Verbose int

	// Target
	URL         string
	Direct      string
	LogFile     string
	BulkFile    string
	RequestFile string
	GoogleDork  string
	ConfigFile  string

	// Request
	Agent         string
	Header        string
	Method        string
	Data          string
	Cookie        string
	DropSetCookie bool
	RandomAgent   bool
	Host          string
	Referer       string
	Headers       string
	AuthType      string
	AuthCred      string
	AbortCode     string
	IgnoreCode    string
	Proxy         string
	Tor           bool
	CheckTor      bool
	Delay         float64
	Timeout       float64
	Retries       int
	ForceSSL      bool

	// Optimization
	Optimize       bool
	KeepAlive      bool
	NullConnection bool
	Threads        int
	// SkipThreadCheck suppresses the sanity cap on Threads, set by the
	// trailing '!' marker on the --threads value.
	SkipThreadCheck bool

	// Injection
	TestParameter string
	Skip          string
	ParamExclude  string
	DBMS          string
	OS            string
	Prefix        string
	Suffix        string
	Tamper        string

	// Detection
	Level  int
	Risk   int
	String string
	Regexp string

	// Techniques
	Technique string
	TimeSec   int

	// Enumeration
	GetAll            bool
	GetBanner         bool
	GetCurrentUser    bool
	GetCurrentDb      bool
	GetPasswordHashes bool
	GetDbs            bool
	GetTables         bool
	GetColumns        bool
	GetSchema         bool
	DumpTable         bool
	DumpAll           bool
	Db                string
	Tbl               string
	Col               string
	SQLQuery          string
	SQLShell          bool

	// Operating system access
	OSCmd   string
	OSShell bool

	// General
	SessionFile  string
	TrafficFile  string
	Answers      string
	Batch        bool
	Charset      string
	CrawlDepth   int
	ETA          bool
	FlushSession bool
	Forms        bool
	OutputDir    string
	SaveConfig   string
	Scope        string
	TestFilter   string

	// Miscellaneous
	Mnemonics       string
	Alert           string
	Beep            bool
	Dependencies    bool
	DisableColoring bool
	ListTampers     bool
	Offline         bool
	Purge           bool
	Shell           bool
	TmpDir          string
	Unstable        bool
	UpdateAll       bool
	Wizard          bool

	// Hidden
	HashFile       string
	Dummy          bool
	MurphyRate     int
	Debug          bool
	IgnoreStdin    bool
	NonInteractive bool
	SmokeTest      bool
	VulnTest       bool
	API            bool

	// StdinPipe yields successive lines from piped standard input. Nil when
	// stdin is a terminal or piped input is disabled.
	StdinPipe func() (string, bool)
}

// fromValues materializes the struct from the destination map.
func fromValues(vals Values) *Options {
	return &Options{
		Verbose: vals.Int("verbose"),

		URL:         vals.String("url"),
		Direct:      vals.String("direct"),
		LogFile:     vals.String("logFile"),
		BulkFile:    vals.String("bulkFile"),
		RequestFile: vals.String("requestFile"),
		GoogleDork:  vals.String("googleDork"),
		ConfigFile:  vals.String("configFile"),

		Agent:         vals.String("agent"),
		Header:        vals.String("header"),
		Method:        vals.String("method"),
		Data:          vals.String("data"),
		Cookie:        vals.String("cookie"),
		DropSetCookie: vals.Bool("dropSetCookie"),
		RandomAgent:   vals.Bool("randomAgent"),
		Host:          vals.String("host"),
		Referer:       vals.String("referer"),
		Headers:       vals.String("headers"),
		AuthType:      vals.String("authType"),
		AuthCred:      vals.String("authCred"),
		AbortCode:     vals.String("abortCode"),
		IgnoreCode:    vals.String("ignoreCode"),
		Proxy:         vals.String("proxy"),
		Tor:           vals.Bool("tor"),
		CheckTor:      vals.Bool("checkTor"),
		Delay:         vals.Float("delay"),
		Timeout:       vals.Float("timeout"),
		Retries:       vals.Int("retries"),
		ForceSSL:      vals.Bool("forceSSL"),

		Optimize:       vals.Bool("optimize"),
		KeepAlive:      vals.Bool("keepAlive"),
		NullConnection: vals.Bool("nullConnection"),
		Threads:        vals.Int("threads"),

		TestParameter: vals.String("testParameter"),
		Skip:          vals.String("skip"),
		ParamExclude:  vals.String("paramExclude"),
		DBMS:          vals.String("dbms"),
		OS:            vals.String("os"),
		Prefix:        vals.String("prefix"),
		Suffix:        vals.String("suffix"),
		Tamper:        vals.String("tamper"),

		Level:  vals.Int("level"),
		Risk:   vals.Int("risk"),
		String: vals.String("string"),
		Regexp: vals.String("regexp"),

		Technique: vals.String("technique"),
		TimeSec:   vals.Int("timeSec"),

		GetAll:            vals.Bool("getAll"),
		GetBanner:         vals.Bool("getBanner"),
		GetCurrentUser:    vals.Bool("getCurrentUser"),
		GetCurrentDb:      vals.Bool("getCurrentDb"),
		GetPasswordHashes: vals.Bool("getPasswordHashes"),
		GetDbs:            vals.Bool("getDbs"),
		GetTables:         vals.Bool("getTables"),
		GetColumns:        vals.Bool("getColumns"),
		GetSchema:         vals.Bool("getSchema"),
		DumpTable:         vals.Bool("dumpTable"),
		DumpAll:           vals.Bool("dumpAll"),
		Db:                vals.String("db"),
		Tbl:               vals.String("tbl"),
		Col:               vals.String("col"),
		SQLQuery:          vals.String("sqlQuery"),
		SQLShell:          vals.Bool("sqlShell"),

		OSCmd:   vals.String("osCmd"),
		OSShell: vals.Bool("osShell"),

		SessionFile:  vals.String("sessionFile"),
		TrafficFile:  vals.String("trafficFile"),
		Answers:      vals.String("answers"),
		Batch:        vals.Bool("batch"),
		Charset:      vals.String("charset"),
		CrawlDepth:   vals.Int("crawlDepth"),
		ETA:          vals.Bool("eta"),
		FlushSession: vals.Bool("flushSession"),
		Forms:        vals.Bool("forms"),
		OutputDir:    vals.String("outputDir"),
		SaveConfig:   vals.String("saveConfig"),
		Scope:        vals.String("scope"),
		TestFilter:   vals.String("testFilter"),

		Mnemonics:       vals.String("mnemonics"),
		Alert:           vals.String("alert"),
		Beep:            vals.Bool("beep"),
		Dependencies:    vals.Bool("dependencies"),
		DisableColoring: vals.Bool("disableColoring"),
		ListTampers:     vals.Bool("listTampers"),
		Offline:         vals.Bool("offline"),
		Purge:           vals.Bool("purge"),
		Shell:           vals.Bool("shell"),
		TmpDir:          vals.String("tmpDir"),
		Unstable:        vals.Bool("unstable"),
		UpdateAll:       vals.Bool("updateAll"),
		Wizard:          vals.Bool("wizard"),

		HashFile:       vals.String("hashFile"),
		Dummy:          vals.Bool("dummy"),
		MurphyRate:     vals.Int("murphyRate"),
		Debug:          vals.Bool("debug"),
		IgnoreStdin:    vals.Bool("ignoreStdin"),
		NonInteractive: vals.Bool("nonInteractive"),
		SmokeTest:      vals.Bool("smokeTest"),
		VulnTest:       vals.Bool("vulnTest"),
		API:            vals.Bool("api"),
	}
}
