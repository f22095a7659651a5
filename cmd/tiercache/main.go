package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"reflect"
	"strconv"
	"strings"

	"github.com/facebookgo/stackerr"

	"github.com/skipor/tiercache"
	"github.com/skipor/tiercache/internal/tag"
	"github.com/skipor/tiercache/internal/util"
	"github.com/skipor/tiercache/log"
	"github.com/skipor/tiercache/policy"
)

type InputConfig struct {
	LogDestination string `json:"log-destination"` // Stdout, stderr, or filepath.
	LogLevel       string `json:"log-level"`
	MaxLevels      int    `json:"max-levels"`
	// Capacities is comma separated per tier capacity list: "2,3,4".
	Capacities string `json:"capacities"`
	Policy     string `json:"policy"`
}

func DefaultInputConfig() *InputConfig {
	return &InputConfig{
		LogDestination: "stderr",
		LogLevel:       "info",
		MaxLevels:      3,
		Capacities:     "2,3,4",
		Policy:         policy.LFU,
	}
}

const usage = `
Config values merge rules:
1) config file value overrides default
2) command line value overrides any
Commands read from stdin:
  write <key> <value>
  read <key>
  delete <key>
  dump
  quit
`

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "%s", usage)
		flag.PrintDefaults()
	}
}

type Config struct {
	LogDestination io.Writer
	LogLevel       log.Level
	Cache          tiercache.Config
}

func main() {
	conf := config()
	l := log.NewLogger(conf.LogLevel, conf.LogDestination)
	conf.Cache.OnDrop = func(e policy.Entry) {
		fmt.Printf("dropped %v=%v\n", e.Key, e.Value)
	}
	c, err := tiercache.NewCache(l, conf.Cache)
	if err != nil {
		l.Fatal("Cache create error: ", err)
	}
	l.Debugf("Config: %#v", conf)
	if tag.Debug {
		l.Warn("Using debug build. It has more runtime checks and large perfomance overhead.")
	}
	repl(l, c)
}

func repl(l log.Logger, c tiercache.Cache) {
	scanner := bufio.NewScanner(os.Stdin)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		cmd, args := fields[0], fields[1:]
		switch {
		case cmd == "write" && len(args) == 2:
			c.Write(args[0], args[1])
		case cmd == "read" && len(args) == 1:
			value, ok := c.Read(args[0])
			if !ok {
				fmt.Println("(absent)")
				continue
			}
			fmt.Println(value)
		case cmd == "delete" && len(args) == 1:
			c.Delete(args[0])
		case cmd == "dump" && len(args) == 0:
			for _, s := range c.Snapshot() {
				fmt.Println(s)
			}
		case cmd == "quit" && len(args) == 0:
			return
		default:
			fmt.Println("invalid command; see usage")
		}
	}
	if err := scanner.Err(); err != nil {
		l.Fatal("Stdin read error: ", err)
	}
}

// config parses command flags, reads config file if any, returns merged config.
// Config values merge rules:
// 1) config file value overrides default
// 2) command line value overrides any
func config() *Config {
	l := log.NewLogger(log.DebugLevel, os.Stderr)
	flg := parseFlags()
	fileConf := DefaultInputConfig()
	if flg.ConfigPath != "" {
		data, err := ioutil.ReadFile(flg.ConfigPath)
		if err != nil {
			l.Fatal("Config file read error: ", err)
		}
		err = json.Unmarshal(data, fileConf)
		if err != nil {
			l.Fatal("Config parse error: ", err)
		}
	}
	mergeConfigs(fileConf, &flg.InputConfig)
	return parseConfig(l, fileConf)
}

func parseConfig(l log.Logger, inputConf *InputConfig) *Config {
	parsed := &Config{}
	var err error
	parsed.LogDestination, err = logDestination(inputConf.LogDestination)
	if err != nil {
		l.Fatal("Log destination open error: ", err)
	}
	parsed.LogLevel, err = log.LevelFromString(strings.ToUpper(inputConf.LogLevel))
	if err != nil {
		l.Fatal("Log level parse error: ", err)
	}
	parsed.Cache.MaxLevels = inputConf.MaxLevels
	parsed.Cache.Capacities, err = parseCapacities(inputConf.Capacities)
	if err != nil {
		l.Fatal("Capacities parse error: ", err)
	}
	parsed.Cache.Policy = inputConf.Policy
	return parsed
}

type Flags struct {
	InputConfig
	ConfigPath string
}

func parseFlags() *Flags {
	flg := &Flags{}
	flag.StringVar(&flg.ConfigPath, "config", "", "JSON config file path")
	flag.StringVar(&flg.LogDestination, "log-destination", "", "stdout, stderr or filepath")
	flag.StringVar(&flg.LogLevel, "log-level", "", "debug, info, warn, error or fatal")
	flag.IntVar(&flg.MaxLevels, "max-levels", 0, "maximum number of cache tiers")
	flag.StringVar(&flg.Capacities, "capacities", "", `comma separated tier capacities: "2,3,4"`)
	flag.StringVar(&flg.Policy, "policy", "", "eviction policy name")
	flag.Parse()
	return flg
}

// mergeConfigs overrides def fields with non-zero override fields.
func mergeConfigs(def, override *InputConfig) {
	defVal := reflect.ValueOf(def).Elem()
	overrideVal := reflect.ValueOf(override).Elem()
	for i, end := 0, defVal.NumField(); i < end; i++ {
		overrideVal := overrideVal.Field(i)
		if !util.IsZeroVal(overrideVal) {
			defVal.Field(i).Set(overrideVal)
		}
	}
}

func parseCapacities(s string) (capacities []int, err error) {
	for _, field := range strings.Split(s, ",") {
		capacity, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return nil, stackerr.Newf("invalid capacity %q: %v", field, err)
		}
		capacities = append(capacities, capacity)
	}
	return capacities, nil
}

func logDestination(dest string) (w io.Writer, err error) {
	switch strings.ToLower(dest) {
	case "stderr":
		w = os.Stderr
	case "stdout":
		w = os.Stdout
	default:
		w, err = os.OpenFile(dest, os.O_WRONLY|os.O_APPEND|os.O_CREATE, 0644)
	}
	return
}
