package service

import (
	"fmt"
	"sort"

	"github.com/weiawesome/wes-io-live/uid-service/internal/config"
	"github.com/weiawesome/wes-io-live/uid-service/internal/generator"
	"github.com/weiawesome/wes-io-live/uid-service/pkg/uid"
)

// Profile is a named, configured generator.
type Profile struct {
	Name      string
	Unique    bool
	Generator generator.Generator
}

// Info describes the profile for listings.
func (p *Profile) Info() ProfileInfo {
	info := ProfileInfo{
		Name:   p.Name,
		Kind:   p.Generator.Kind(),
		Unique: p.Unique,
	}
	if rg, ok := p.Generator.(*generator.RandomGenerator); ok {
		size := rg.Size()
		info.Alphabet = rg.Alphabet().Name()
		info.BitStrength = size.BitStrength
		info.Length = size.Length
	}
	return info
}

// BuildProfiles creates one generator per configured profile. All random
// kinds share src. Any invalid profile fails the whole build.
func BuildProfiles(profiles map[string]config.ProfileConfig, sf config.SnowflakeConfig, src uid.EntropySource) (map[string]*Profile, error) {
	names := make([]string, 0, len(profiles))
	for name := range profiles {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make(map[string]*Profile, len(profiles))
	for _, name := range names {
		pc := profiles[name]
		gen, err := generator.New(generator.Options{
			Kind:        pc.Kind,
			Alphabet:    pc.Alphabet,
			BitStrength: pc.BitStrength,
			Length:      pc.Length,
			MachineID:   sf.MachineID,
			Epoch:       sf.Epoch,
		}, src)
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", name, err)
		}
		out[name] = &Profile{
			Name:      name,
			Unique:    pc.Unique,
			Generator: gen,
		}
	}
	return out, nil
}
