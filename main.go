package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"sync"

	"asset-badge/badge"
	"asset-badge/blockfrost"
	"asset-badge/cache/metadata"
	"asset-badge/config"
	"asset-badge/models"
	"asset-badge/resolver"
	"asset-badge/util/log"
)

var (
	pprofEnabled bool
	pprofPort    int

	unit     string
	quantity string
	name     string
	input    string
)

func init() {
	flag.BoolVar(&pprofEnabled, "pprof", false, "enable pprof")
	flag.IntVar(&pprofPort, "p", 6060, "pprof port number")

	flag.StringVar(&unit, "unit", "", "asset unit, policy id followed by hex asset name")
	flag.StringVar(&quantity, "quantity", "1", "maximum transferable quantity")
	flag.StringVar(&name, "name", "", "fallback display name")
	flag.StringVar(&input, "input", "", "quantity typed into the badge")
}

func main() {
	flag.Parse()
	config.Load(true)
	log.Init(config.DebugMode())
	log.SetPrefix(config.GetLabel())

	if pprofEnabled {
		enablePProf()
	}

	asset, ok := models.NewAsset(unit, quantity, name)
	if unit == "" || !ok {
		fmt.Fprintln(os.Stderr, "a valid -unit and -quantity are required")
		flag.Usage()
		os.Exit(2)
	}

	client := blockfrost.NewClient(config.GetAPI(), config.GetProjectID(),
		blockfrost.WithTimeout(config.GetTimeout()),
		blockfrost.WithMaxConnsPerHost(config.GetMaxConnsPerHost()),
	)

	assets, err := metadata.New(client, config.GetCacheSize())
	if err != nil {
		log.Fatal(err)
	}

	row := newRow(*asset)
	b := badge.New(
		resolver.New(assets, config.GetIPFSGateway()),
		badge.NewValidator(config.GetDecimals()),
		row.callbacks(),
		badge.WithRetryDelay(config.GetRetryDelay()),
		badge.WithTimeout(config.GetTimeout()),
	)
	row.badge = b

	b.SetAsset(row.current())

	// Feed the quantity one keystroke at a time, the way a text field would.
	for i := 1; i <= len(input); i++ {
		if !b.Input(input[:i]) {
			log.Warnf("keystroke %q rejected", input[:i])
			break
		}
	}

	b.Wait()
	printView(b.View())
	b.Unmount()
}

// row is a single-row stand-in for the transaction builder owning the asset.
type row struct {
	mu    sync.Mutex
	asset models.Asset
	badge *badge.Badge
}

func newRow(asset models.Asset) *row {
	return &row{asset: asset}
}

func (r *row) current() *models.Asset {
	r.mu.Lock()
	defer r.mu.Unlock()

	a := r.asset
	return &a
}

func (r *row) update(f func(a *models.Asset)) {
	r.mu.Lock()
	f(&r.asset)
	r.mu.Unlock()

	r.badge.SetAsset(r.current())
}

func (r *row) callbacks() badge.Callbacks {
	return badge.Callbacks{
		OnRemove: func() {
			log.Info("row removed")
		},
		OnInput: func(text string) {
			r.update(func(a *models.Asset) { a.Input = text })
		},
		OnLoad: func(m models.Metadata) {
			log.Infof("loaded %s", m.DisplayName)
			r.update(func(a *models.Asset) {
				a.DisplayName = m.DisplayName
				a.Image = m.ImageURI
				a.Loaded = true
			})
		},
	}
}

func printView(v badge.View) {
	out := struct {
		State       string `json:"state"`
		Icon        string `json:"icon"`
		Image       string `json:"image,omitempty"`
		Name        string `json:"name"`
		Fingerprint string `json:"fingerprint"`
		Value       string `json:"value"`
		ReadOnly    bool   `json:"readOnly"`
		Invalid     bool   `json:"invalid"`
		Width       int    `json:"width"`
	}{
		State:       v.State.String(),
		Icon:        v.Icon.Kind.String(),
		Image:       v.Icon.Src,
		Name:        v.Icon.Name,
		Fingerprint: v.Icon.Fingerprint,
		Value:       v.Field.Value,
		ReadOnly:    v.Field.ReadOnly,
		Invalid:     v.Field.Invalid,
		Width:       v.Field.Width,
	}

	content, err := json.MarshalIndent(out, "", "    ")
	if err != nil {
		log.Fatal(err)
	}

	fmt.Println(string(content))
}

func enablePProf() {
	if pprofPort < 1 || pprofPort > 65535 {
		panic("Incorrect pprof port")
	}

	go func() {
		url := fmt.Sprintf("localhost:%d", pprofPort)
		log.Debug(http.ListenAndServe(url, nil))
	}()
}
