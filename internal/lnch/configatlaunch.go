//    RumorLensGo
//    Copyright: M Kellner 2024-25
//    License: GNU GENERAL PUBLIC LICENSE 3
//        (see LICENSE in the top level directory of the distribution)

package lnch

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"strconv"

	"github.com/m-kellner/RumorLensGo/internal/mm"
	"github.com/m-kellner/RumorLensGo/internal/str"
	"github.com/m-kellner/RumorLensGo/internal/vv"
)

var (
	// Config - the active configuration; set once by ConfigAtLaunch()
	Config = defaultconfig()
)

func defaultconfig() str.CurrentConfiguration {
	return str.CurrentConfiguration{
		BatchSize:     vv.DEFAULTBATCHSIZE,
		BlackAndWhite: false,
		CheckpointFl:  vv.DEFAULTCHECKPOINT,
		DBFile:        vv.DEFAULTDBFILE,
		Dropout:       vv.DEFAULTDROPOUT,
		EchoLog:       0,
		EncoderModel:  vv.DEFAULTENCODER,
		EncoderDir:    vv.DEFAULTENCODERDIR,
		Epochs:        vv.DEFAULTEPOCHS,
		GateHidden:    vv.DEFAULTGATEHIDDEN,
		Gzip:          false,
		HeadHidden:    vv.DEFAULTHEADHIDDEN,
		HostIP:        vv.SERVEDFROMHOST,
		HostPort:      vv.SERVEDFROMPORT,
		LDAIterations: vv.LDAITER,
		LLMModel:      vv.DEFAULTLLMMODEL,
		LLMStream:     false,
		LLMURL:        vv.DEFAULTLLMURL,
		LearningRate:  vv.DEFAULTLEARNINGRT,
		LogLevel:      mm.MSGNOTE,
		Seed:          vv.DEFAULTSEED,
		Topics:        vv.LDATOPICS,
		WorkerCount:   runtime.NumCPU(),
	}
}

// ConfigAtLaunch - read the configuration values from JSON and/or the command line
func ConfigAtLaunch(args []string) {
	const (
		FAIL1 = "Could not open '%s'"
		FAIL2 = "ConfigAtLaunch() failed to parse '%s'; using defaults"
	)

	cf := vv.CONFIGNAME

	// the config file flag has to win before the file is read
	for i, a := range args {
		if a == "-cf" && i+1 < len(args) {
			cf = args[i+1]
		}
	}

	fromfile, err := configfromfile(cf)
	if err == nil {
		Config = fromfile
	} else if cf != vv.CONFIGNAME {
		// an explicitly requested config file that will not load is fatal
		mm.Chkf(err, "ConfigAtLaunch()")
	} else {
		mm.Msg(fmt.Sprintf(FAIL1, cf), mm.MSGTMI)
	}

	atoi := func(s string) int {
		n, e := strconv.Atoi(s)
		mm.Chke(e)
		return n
	}

	atof := func(s string) float64 {
		f, e := strconv.ParseFloat(s, 64)
		mm.Chke(e)
		return f
	}

	for i, a := range args {
		switch a {
		case "-bs":
			Config.BatchSize = atoi(args[i+1])
		case "-bw":
			Config.BlackAndWhite = true
		case "-ck":
			Config.CheckpointFl = args[i+1]
		case "-db":
			Config.DBFile = args[i+1]
		case "-do":
			Config.Dropout = atof(args[i+1])
		case "-el":
			Config.EchoLog = atoi(args[i+1])
		case "-em":
			Config.EncoderModel = args[i+1]
		case "-ep":
			Config.Epochs = atoi(args[i+1])
		case "-gl":
			Config.LogLevel = atoi(args[i+1])
		case "-gz":
			Config.Gzip = true
		case "-h":
			printversion()
			ht := mm.ColorOutput(vv.HELPTEXT)
			fmt.Printf(ht, vv.DEFAULTCHECKPOINT, vv.DEFAULTDBFILE, vv.DEFAULTEPOCHS, vv.LDAITER,
				vv.DEFAULTLLMMODEL, vv.DEFAULTENCODERDIR, vv.SERVEDFROMHOST, vv.DEFAULTSEED,
				vv.SERVEDFROMPORT, vv.LDATOPICS, vv.DEFAULTLLMURL)
			os.Exit(1)
		case "-in":
			Config.InputFile = args[i+1]
		case "-li":
			Config.LDAIterations = atoi(args[i+1])
		case "-lm":
			Config.LLMModel = args[i+1]
		case "-lr":
			Config.LearningRate = atof(args[i+1])
		case "-md":
			Config.EncoderDir = args[i+1]
		case "-pf":
			Config.ProfileCPU = true
		case "-q":
			Config.QuietStart = true
		case "-sa":
			Config.HostIP = args[i+1]
		case "-sd":
			Config.Seed = int64(atoi(args[i+1]))
		case "-sp":
			Config.HostPort = atoi(args[i+1])
		case "-st":
			Config.LLMStream = true
		case "-tk":
			tk := atoi(args[i+1])
			if tk < 1 || tk > vv.LDAMAXTOPICS {
				tk = vv.LDATOPICS
			}
			Config.Topics = tk
		case "-u":
			Config.LLMURL = args[i+1]
		case "-v":
			fmt.Println(vv.VERSION)
			os.Exit(1)
		case "-wc":
			Config.WorkerCount = atoi(args[i+1])
		default:
			// do nothing
		}
	}

	mm.UpdateMessenger(Config.LogLevel, Config.BlackAndWhite)

	if !Config.QuietStart {
		printversion()
	}
}

// configfromfile - try to read a JSON config from the CWD and then from the user config directory
func configfromfile(cf string) (str.CurrentConfiguration, error) {
	conf := defaultconfig()

	paths := []string{cf}
	if uh, e := os.UserHomeDir(); e == nil {
		paths = append(paths, fmt.Sprintf(vv.CONFIGALTAPTH, uh)+vv.CONFIGNAME)
	}

	var lasterr error
	for _, p := range paths {
		fl, e := os.Open(p)
		if e != nil {
			lasterr = e
			continue
		}
		decoder := json.NewDecoder(fl)
		e = decoder.Decode(&conf)
		_ = fl.Close()
		if e != nil {
			lasterr = fmt.Errorf("failed to parse configuration file '%s': %w", p, e)
			continue
		}
		return conf, nil
	}
	return conf, lasterr
}

func printversion() {
	v := fmt.Sprintf("%s (v.%s)", vv.MYNAME, vv.VERSION)
	mm.Msg(v, mm.MSGMAND)
}
