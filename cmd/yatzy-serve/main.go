package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/golang/glog"

	"github.com/golang-yatzy/yatzy"
)

type Params struct {
	DBPath     string
	ListenAddr string
}

func main() {
	var params Params
	flag.StringVar(&params.DBPath, "db", "", "Path to a solved EV checkpoint file")
	flag.StringVar(&params.ListenAddr, "listen_addr", ":8080", "HTTP listen address")
	flag.Parse()

	if params.DBPath == "" {
		glog.Errorf("-db is required")
		os.Exit(1)
	}

	glog.Infof("loading EV table from %s", params.DBPath)
	ev, err := loadEV(params.DBPath)
	if err != nil {
		glog.Errorf("unable to load EV table: %v", err)
		os.Exit(1)
	}
	glog.Infof("loaded %d EV table entries", len(ev))

	s := &server{ev: ev}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Get("/solve", s.handleSolve)

	glog.Infof("listening on %s", params.ListenAddr)
	glog.Error(http.ListenAndServe(params.ListenAddr, r))
}

func loadEV(path string) (map[yatzy.GameState]float64, error) {
	statesByEmpty := yatzy.EnumerateStatesByEmptyCount()
	index := yatzy.NewStateIndex(statesByEmpty)

	db, err := yatzy.NewFileDB(path, index)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return yatzy.LoadFloatTable(db), nil
}

type server struct {
	ev map[yatzy.GameState]float64
}

// handleSolve parses a Game out of the query string and responds with every
// choice tied for the highest expected value.
//
// Query parameters (all 17 are required; any absent parameter is an error):
//   - dice: the five current dice values as comma-separated digits, e.g.
//     "1,2,3,4,5"
//   - rerolls_left: 0, 1, or 2
//   - one parameter per combo name (ones, twos, ..., yatzy), holding either
//     the literal string "empty" or that combo's recorded score
func (s *server) handleSolve(w http.ResponseWriter, r *http.Request) {
	g, err := parseGame(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	choices, _ := yatzy.BestChoices(g, s.ev, yatzy.FloatArith{})

	resp := make([]choiceJSON, len(choices))
	for i, c := range choices {
		resp[i] = toChoiceJSON(c)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		glog.Errorf("error encoding response: %v", err)
	}
}

type choiceJSON struct {
	Choice string `json:"choice"`
	Combo  string `json:"combo,omitempty"`
	Dice   []int  `json:"dice,omitempty"`
}

func toChoiceJSON(c yatzy.Choice) choiceJSON {
	if c.Kind == yatzy.ChoiceSelectCombo {
		return choiceJSON{Choice: "select_combo", Combo: c.Combo.String()}
	}
	// []uint8 would be encoded as a base64 string; a []int encodes as a
	// JSON array of die values.
	dice := make([]int, len(c.Reroll))
	for i, d := range c.Reroll {
		dice[i] = int(d)
	}
	return choiceJSON{Choice: "reroll", Dice: dice}
}

// missingParamError reports that a required query parameter was absent
// entirely, distinct from one present but malformed.
type missingParamError struct{ name string }

func (e *missingParamError) Error() string {
	return fmt.Sprintf("missing required query parameter %q", e.name)
}

// requireParam returns q's value for name, or a missingParamError if the
// parameter was not supplied at all (an empty string is only valid when
// the caller explicitly sent it, e.g. "name=").
func requireParam(q url.Values, name string) (string, error) {
	if !q.Has(name) {
		return "", &missingParamError{name: name}
	}
	return q.Get(name), nil
}

func parseGame(r *http.Request) (yatzy.Game, error) {
	q := r.URL.Query()

	diceParam, err := requireParam(q, "dice")
	if err != nil {
		return yatzy.Game{}, err
	}
	parts := strings.Split(diceParam, ",")
	if len(parts) != yatzy.NumDice {
		return yatzy.Game{}, fmt.Errorf("dice must be %d comma-separated digits, got %q", yatzy.NumDice, diceParam)
	}
	var values [yatzy.NumDice]yatzy.Die
	for i, p := range parts {
		v, err := strconv.ParseUint(p, 10, 8)
		if err != nil {
			return yatzy.Game{}, fmt.Errorf("invalid die value %q: %w", p, err)
		}
		values[i] = yatzy.Die(v)
	}
	dice, err := yatzy.NewDice(values)
	if err != nil {
		return yatzy.Game{}, err
	}

	rerollsParam, err := requireParam(q, "rerolls_left")
	if err != nil {
		return yatzy.Game{}, err
	}
	rerollsLeft, err := strconv.ParseUint(rerollsParam, 10, 8)
	if err != nil {
		return yatzy.Game{}, fmt.Errorf("invalid rerolls_left %q: %w", rerollsParam, err)
	}

	var combos [yatzy.NumCombos]*uint8
	for i, c := range yatzy.AllCombos {
		raw, err := requireParam(q, c.String())
		if err != nil {
			return yatzy.Game{}, err
		}
		if raw == "empty" {
			continue
		}
		v, err := strconv.ParseUint(raw, 10, 8)
		if err != nil {
			return yatzy.Game{}, fmt.Errorf("invalid score %q for %s: %w", raw, c, err)
		}
		points := uint8(v)
		combos[i] = &points
	}

	return yatzy.NewGameFromScorecard(dice, uint8(rerollsLeft), combos)
}
