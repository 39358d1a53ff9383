package world

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// yamlWorldFile is the top-level YAML structure for world files.
type yamlWorldFile struct {
	World yamlWorld `yaml:"world"`
}

// yamlWorld is the YAML representation of the world.
type yamlWorld struct {
	Width  int         `yaml:"width"`
	Height int         `yaml:"height"`
	Start  yamlStart   `yaml:"start"`
	Flight *yamlFlight `yaml:"flight"`
	Gates  []yamlGate  `yaml:"gates"`
	Rooms  []yamlRoom  `yaml:"rooms"`
}

type yamlStart struct {
	Room      string   `yaml:"room"`
	X         int      `yaml:"x"`
	Y         int      `yaml:"y"`
	Facing    string   `yaml:"facing"`
	Health    int      `yaml:"health"`
	MaxHealth int      `yaml:"max_health"`
	Inventory []string `yaml:"inventory"`
}

type yamlFlight struct {
	Requires string `yaml:"requires"`
	Room     string `yaml:"room"`
	X        int    `yaml:"x"`
	Y        int    `yaml:"y"`
}

// yamlGate gates every room of a region behind an item.
type yamlGate struct {
	Region   string `yaml:"region"`
	Requires string `yaml:"requires"`
	Message  string `yaml:"message"`
}

// yamlRoom is the YAML representation of a room.
type yamlRoom struct {
	Key     string            `yaml:"key"`
	Name    string            `yaml:"name"`
	Region  string            `yaml:"region"`
	Verse   string            `yaml:"verse"`
	Layout  [][]int           `yaml:"layout"`
	Exits   map[string]string `yaml:"exits"`
	Objects []yamlObject      `yaml:"objects"`
}

type yamlObject struct {
	ID            string `yaml:"id"`
	Kind          string `yaml:"kind"`
	X             int    `yaml:"x"`
	Y             int    `yaml:"y"`
	Message       string `yaml:"message"`
	Item          string `yaml:"item"`
	Requires      string `yaml:"requires"`
	FollowUp      string `yaml:"followup"`
	RewardMessage string `yaml:"reward_message"`
	Rejection     string `yaml:"rejection"`
	Threshold     int    `yaml:"threshold"`
	Counter       string `yaml:"counter"`
}

// LoadWorldFromFile reads and validates a world YAML file.
//
// Precondition: path must point to a valid YAML world file.
// Postcondition: Returns a validated World or a non-nil error.
func LoadWorldFromFile(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading world file %s: %w", path, err)
	}
	return LoadWorldFromBytes(data)
}

// LoadWorldFromBytes parses and validates a world from YAML bytes.
//
// Precondition: data must be valid YAML conforming to the world schema.
// Postcondition: Returns a validated World or a non-nil error.
func LoadWorldFromBytes(data []byte) (*World, error) {
	var file yamlWorldFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing world YAML: %w", err)
	}

	w, err := convertYAMLWorld(file.World)
	if err != nil {
		return nil, fmt.Errorf("converting world: %w", err)
	}
	if err := w.Validate(); err != nil {
		return nil, fmt.Errorf("validating world: %w", err)
	}
	return w, nil
}

// convertYAMLWorld converts the parsed YAML structures into domain types.
func convertYAMLWorld(yw yamlWorld) (*World, error) {
	w := &World{
		Width:  yw.Width,
		Height: yw.Height,
		Start: PlayerStart{
			Placement: Placement{Room: yw.Start.Room, X: yw.Start.X, Y: yw.Start.Y},
			Facing:    Facing(yw.Start.Facing),
			Health:    yw.Start.Health,
			MaxHealth: yw.Start.MaxHealth,
			Inventory: yw.Start.Inventory,
		},
		Rooms: make(map[string]*Room, len(yw.Rooms)),
	}
	if w.Start.Facing == "" {
		w.Start.Facing = FacingDown
	}
	if yw.Flight != nil {
		w.Flight = &Flight{
			Placement: Placement{Room: yw.Flight.Room, X: yw.Flight.X, Y: yw.Flight.Y},
			Requires:  yw.Flight.Requires,
		}
	}

	gates := make(map[string]*Gate, len(yw.Gates))
	for _, yg := range yw.Gates {
		if yg.Region == "" {
			return nil, fmt.Errorf("gate for %q has empty region", yg.Requires)
		}
		if _, dup := gates[yg.Region]; dup {
			return nil, fmt.Errorf("duplicate gate for region %q", yg.Region)
		}
		gates[yg.Region] = &Gate{Requires: yg.Requires, Message: yg.Message}
	}

	regions := make(map[string]bool)
	for _, yr := range yw.Rooms {
		if yr.Key == "" {
			return nil, fmt.Errorf("room %q has empty key", yr.Name)
		}
		if _, dup := w.Rooms[yr.Key]; dup {
			return nil, fmt.Errorf("duplicate room key %q", yr.Key)
		}
		room := &Room{
			Key:    yr.Key,
			Name:   yr.Name,
			Region: yr.Region,
			Verse:  strings.TrimSpace(yr.Verse),
			Tiles:  make([][]Tile, len(yr.Layout)),
			Exits:  make(map[Direction]string, len(yr.Exits)),
			Gate:   gates[yr.Region],
		}
		if room.Region == "" {
			room.Region = yr.Key
		}
		regions[room.Region] = true
		for y, row := range yr.Layout {
			room.Tiles[y] = make([]Tile, len(row))
			for x, v := range row {
				room.Tiles[y][x] = Tile(v)
			}
		}
		for dir, target := range yr.Exits {
			room.Exits[Direction(dir)] = target
		}
		for _, yo := range yr.Objects {
			obj := &Object{
				ID:            yo.ID,
				Kind:          ObjectKind(yo.Kind),
				X:             yo.X,
				Y:             yo.Y,
				Message:       strings.TrimSpace(yo.Message),
				Item:          yo.Item,
				Requires:      yo.Requires,
				FollowUp:      strings.TrimSpace(yo.FollowUp),
				RewardMessage: strings.TrimSpace(yo.RewardMessage),
				Rejection:     strings.TrimSpace(yo.Rejection),
				Threshold:     yo.Threshold,
				Counter:       yo.Counter,
			}
			if obj.ID == "" {
				obj.ID = fmt.Sprintf("%s-%d-%d", obj.Kind, obj.X, obj.Y)
			}
			room.Objects = append(room.Objects, obj)
		}
		w.Rooms[room.Key] = room
	}

	for region := range gates {
		if !regions[region] {
			return nil, fmt.Errorf("gate targets unknown region %q", region)
		}
	}
	return w, nil
}
