package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jonboulle/clockwork"
	"github.com/xuning888/blockdeque/bench"
	"github.com/xuning888/blockdeque/config"
	"github.com/xuning888/blockdeque/logger"
)

func main() {
	cf := flag.String("c", "", "config file, .yaml/.yml or \"key value\" lines")
	cases := flag.String("cases", "", "comma separated bench cases: "+strings.Join(bench.Names(), ","))
	flag.Parse()

	if *cf != "" {
		if err := config.SetUpConfig(*cf); err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(1)
		}
	}
	props := config.Properties
	if *cases != "" {
		props.Cases = strings.Split(*cases, ",")
	}

	err := logger.Configure(&logger.Configuration{
		Level:         logger.ParseLevel(props.LogLevel),
		TimeFormat:    logger.DefaultTimeFormat,
		LogPath:       props.LogDir,
		EnableFileLog: props.FileLog,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "configure logger: %v\n", err)
		os.Exit(1)
	}

	logger.InfoF("bench start, repeat: %d, number: %d, length: %d", props.Repeat, props.Number, props.Length)
	results, err := bench.Run(bench.NewTimer(clockwork.NewRealClock()), props)
	if err != nil {
		logger.ErrorF("bench failed: %v", err)
		os.Exit(1)
	}
	for _, r := range results {
		fmt.Printf("%-12s %-12s min %10.3f ns  max %10.3f ns  median %10.3f ns  std %10.3f ns\n",
			r.Case, r.Impl, r.Stats.Min, r.Stats.Max, r.Stats.Median, r.Stats.Stdev)
	}
}
