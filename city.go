package assist

import (
	"github.com/streetlab/assist/pkg/errors"
	"github.com/streetlab/assist/pkg/geomap"
)

// RenameCity supports an operator-triggered bulk rename: the new city
// is resolved (get-or-create under the old city's state and country)
// and an id remapping is recorded. Analysis switches to only-visible
// mode to bound the blast radius of the rename; reset the session and
// re-analyze to pick the remap up.
func (a *Analyzer) RenameCity(oldName, newName string) error {
	city, ok := a.editor.CityByName(oldName)
	if !ok {
		return errors.NewNotFoundError("city", oldName)
	}

	newCity, err := a.editor.AddOrGetCity(city.CountryID, city.StateID, newName)
	if err != nil {
		return errors.WrapResource("add-or-get", "city", newName, err)
	}

	a.mu.Lock()
	a.cityRemap[city.ID] = newCity.ID
	a.onlyVisible = true
	a.mu.Unlock()

	a.logger.Info().
		Str("old", oldName).
		Str("new", newName).
		Msg("City remap recorded, reset the session to re-analyze")
	return nil
}

// NewCityID returns the remapped id for a city, or the id itself when
// no rename touched it.
func (a *Analyzer) NewCityID(id geomap.CityID) geomap.CityID {
	a.mu.Lock()
	defer a.mu.Unlock()
	if mapped, ok := a.cityRemap[id]; ok {
		return mapped
	}
	return id
}
