package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle         = "app_title"
	KeyPlay             = "play"
	KeyPause            = "pause"
	KeyMute             = "mute"
	KeyUnmute           = "unmute"
	KeyVolume           = "volume"
	KeySettings         = "settings"
	KeyQuality          = "quality"
	KeyAudioTrack       = "audio_track"
	KeyLanguage         = "language"
	KeySave             = "save"
	KeyCancel           = "cancel"
	KeyLoad             = "load"
	KeyEnterPlaylistURL = "enter_playlist_url"
	KeyResolving        = "resolving"
	KeyPlaylistError    = "playlist_error"
	KeyPlaylistEmpty    = "playlist_empty"
	KeyNoAudioTracks    = "no_audio_tracks"
	KeySettingsSaved    = "settings_saved"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: "en",
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. Unknown codes are ignored so the
// previous language stays in effect.
func (l *Localization) SetLanguage(lang string) {
	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		"en": "English",
		"ru": "Русский",
		"pt": "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts["en"] = map[string]string{
		KeyAppTitle:         "Sync Player",
		KeyPlay:             "Play",
		KeyPause:            "Pause",
		KeyMute:             "Mute",
		KeyUnmute:           "Unmute",
		KeyVolume:           "Volume",
		KeySettings:         "Settings",
		KeyQuality:          "Quality",
		KeyAudioTrack:       "Audio track",
		KeyLanguage:         "Language",
		KeySave:             "Save",
		KeyCancel:           "Cancel",
		KeyLoad:             "Load",
		KeyEnterPlaylistURL: "Enter playlist URL (https://youtube.com/playlist?list=...)",
		KeyResolving:        "Resolving playlist...",
		KeyPlaylistError:    "Failed to resolve playlist",
		KeyPlaylistEmpty:    "Playlist has no entries",
		KeyNoAudioTracks:    "No alternate audio tracks",
		KeySettingsSaved:    "Settings saved successfully!",
	}

	// Russian texts
	l.texts["ru"] = map[string]string{
		KeyAppTitle:         "Sync Player",
		KeyPlay:             "Воспроизвести",
		KeyPause:            "Пауза",
		KeyMute:             "Без звука",
		KeyUnmute:           "Включить звук",
		KeyVolume:           "Громкость",
		KeySettings:         "Настройки",
		KeyQuality:          "Качество",
		KeyAudioTrack:       "Аудиодорожка",
		KeyLanguage:         "Язык",
		KeySave:             "Сохранить",
		KeyCancel:           "Отмена",
		KeyLoad:             "Загрузить",
		KeyEnterPlaylistURL: "Введите URL плейлиста (https://youtube.com/playlist?list=...)",
		KeyResolving:        "Разбор плейлиста...",
		KeyPlaylistError:    "Не удалось разобрать плейлист",
		KeyPlaylistEmpty:    "Плейлист пуст",
		KeyNoAudioTracks:    "Нет альтернативных аудиодорожек",
		KeySettingsSaved:    "Настройки успешно сохранены!",
	}

	// Portuguese texts
	l.texts["pt"] = map[string]string{
		KeyAppTitle:         "Sync Player",
		KeyPlay:             "Reproduzir",
		KeyPause:            "Pausar",
		KeyMute:             "Silenciar",
		KeyUnmute:           "Ativar som",
		KeyVolume:           "Volume",
		KeySettings:         "Configurações",
		KeyQuality:          "Qualidade",
		KeyAudioTrack:       "Faixa de áudio",
		KeyLanguage:         "Idioma",
		KeySave:             "Salvar",
		KeyCancel:           "Cancelar",
		KeyLoad:             "Carregar",
		KeyEnterPlaylistURL: "Digite URL da playlist (https://youtube.com/playlist?list=...)",
		KeyResolving:        "Resolvendo playlist...",
		KeyPlaylistError:    "Falha ao resolver playlist",
		KeyPlaylistEmpty:    "Playlist sem entradas",
		KeyNoAudioTracks:    "Sem faixas de áudio alternativas",
		KeySettingsSaved:    "Configurações salvas com sucesso!",
	}
}
