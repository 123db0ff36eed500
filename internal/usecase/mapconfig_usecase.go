package usecase

import "github.com/planinfo-service/internal/domain"

// MapConfigUseCase - view settings and overlay catalogue for the plan viewer
type MapConfigUseCase struct {
	config domain.MapConfig
}

func NewMapConfigUseCase() *MapConfigUseCase {
	return &MapConfigUseCase{config: kristiansandMapConfig()}
}

// GetMapConfig returns a copy; overlays are definitions only, tiles come from the WMS hosts.
func (uc *MapConfigUseCase) GetMapConfig() domain.MapConfig {
	cfg := uc.config
	cfg.Overlays = make([]domain.OverlayLayer, len(uc.config.Overlays))
	for i, o := range uc.config.Overlays {
		o.Layers = append([]string(nil), o.Layers...)
		cfg.Overlays[i] = o
	}
	return cfg
}

func kristiansandMapConfig() domain.MapConfig {
	return domain.MapConfig{
		Center:    domain.GeoPoint{Lat: 58.1467, Lng: 7.9956},
		Zoom:      11,
		MinZoom:   10,
		MaxZoom:   18,
		MaxBounds: domain.MunicipalityExtent,
		Overlays: []domain.OverlayLayer{
			wmsOverlay("Kommunegrenser", "https://wms.geonorge.no/skwms1/wms.adm_enheter", "© Kartverket", 0.7, true, "kommuner"),
			wmsOverlay("Arealbruk fra AR5", "https://wms.nibio.no/cgi-bin/ar5", "© NIBIO", 0.6, true, "ar5_2022"),
			wmsOverlay("Reguleringsplaner", "https://wms.geonorge.no/skwms1/wms.plan", "© Kartverket", 0.8, false, "reguleringsplan_omrade"),
			wmsOverlay("Teknisk infrastruktur", "https://wms.geonorge.no/skwms1/wms.vegnett", "© Kartverket", 0.7, false,
				"riksvegruter", "fylkesvegruter", "kommunaleveger"),
			wmsOverlay("Høydekurver", "https://wms.geonorge.no/skwms1/wms.topo4", "© Kartverket", 0.5, false, "hoydekurver"),
			wmsOverlay("Vannkraft og energi", "https://wms.geonorge.no/skwms1/wms.energi", "© Kartverket", 0.6, false,
				"kraftlinjer", "transformatorstasjoner"),
		},
	}
}

func wmsOverlay(name, url, attribution string, opacity float64, checked bool, layers ...string) domain.OverlayLayer {
	return domain.OverlayLayer{
		Name:        name,
		URL:         url,
		Layers:      layers,
		Format:      "image/png",
		Transparent: true,
		Attribution: attribution,
		Opacity:     opacity,
		Checked:     checked,
	}
}
