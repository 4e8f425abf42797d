package ui

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle          = "app_title"
	KeyUntitled          = "untitled"
	KeyFile              = "file"
	KeyTrack             = "track"
	KeyNewWindow         = "new_window"
	KeyOpenProject       = "open_project"
	KeySave              = "save"
	KeySaveAs            = "save_as"
	KeySaveIntoFolder    = "save_into_folder"
	KeyImportMedia       = "import_media"
	KeyReveal            = "reveal"
	KeyPreferences       = "preferences"
	KeyAddTrack          = "add_track"
	KeyRemoveTrack       = "remove_track"
	KeyNoTracks          = "no_tracks"
	KeyNotSaved          = "not_saved"
	KeyProjectSaved      = "project_saved"
	KeyProjectLoaded     = "project_loaded"
	KeyNoProjectFound    = "no_project_found"
	KeyLanguage          = "language"
	KeyDefaultName       = "default_name"
	KeyCancel            = "cancel"
	KeySettingsSaved     = "settings_saved"
	KeyErrorRevealing    = "error_revealing"
	KeyTrackFilesFormat  = "track_files_format"
	KeyRestartForLangMsg = "restart_for_language"
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

// SetLanguage sets the current language
func (l *Localization) SetLanguage(lang string) {
	if lang == "system" {
		lang = "en"
	}

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

	if texts, exists := l.texts["en"]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

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

func (l *Localization) initializeTexts() {
	l.texts["en"] = map[string]string{
		KeyAppTitle:          "Proteus",
		KeyUntitled:          "Untitled",
		KeyFile:              "File",
		KeyTrack:             "Track",
		KeyNewWindow:         "New Window",
		KeyOpenProject:       "Open Project...",
		KeySave:              "Save",
		KeySaveAs:            "Save As...",
		KeySaveIntoFolder:    "Save Into Folder...",
		KeyImportMedia:       "Import Media...",
		KeyReveal:            "Show Project Folder",
		KeyPreferences:       "Preferences...",
		KeyAddTrack:          "Add Track",
		KeyRemoveTrack:       "Remove Track",
		KeyNoTracks:          "No tracks yet. Use Track > Add Track or File > Import Media.",
		KeyNotSaved:          "Not saved",
		KeyProjectSaved:      "Project saved",
		KeyProjectLoaded:     "Project loaded",
		KeyNoProjectFound:    "No project found at the selected location",
		KeyLanguage:          "Language",
		KeyDefaultName:       "Default Project Name",
		KeyCancel:            "Cancel",
		KeySettingsSaved:     "Settings saved",
		KeyErrorRevealing:    "Error opening project folder",
		KeyTrackFilesFormat:  "Track %d (%d files)",
		KeyRestartForLangMsg: "The language applies to windows opened from now on.",
	}

	l.texts["ru"] = map[string]string{
		KeyAppTitle:          "Proteus",
		KeyUntitled:          "Без названия",
		KeyFile:              "Файл",
		KeyTrack:             "Дорожка",
		KeyNewWindow:         "Новое окно",
		KeyOpenProject:       "Открыть проект...",
		KeySave:              "Сохранить",
		KeySaveAs:            "Сохранить как...",
		KeySaveIntoFolder:    "Сохранить в папку...",
		KeyImportMedia:       "Импорт медиа...",
		KeyReveal:            "Показать папку проекта",
		KeyPreferences:       "Настройки...",
		KeyAddTrack:          "Добавить дорожку",
		KeyRemoveTrack:       "Удалить дорожку",
		KeyNoTracks:          "Дорожек пока нет. Используйте Дорожка > Добавить дорожку или Файл > Импорт медиа.",
		KeyNotSaved:          "Не сохранён",
		KeyProjectSaved:      "Проект сохранён",
		KeyProjectLoaded:     "Проект загружен",
		KeyNoProjectFound:    "В выбранном месте нет проекта",
		KeyLanguage:          "Язык",
		KeyDefaultName:       "Имя проекта по умолчанию",
		KeyCancel:            "Отмена",
		KeySettingsSaved:     "Настройки сохранены",
		KeyErrorRevealing:    "Ошибка открытия папки проекта",
		KeyTrackFilesFormat:  "Дорожка %d (файлов: %d)",
		KeyRestartForLangMsg: "Язык применяется к новым окнам.",
	}

	l.texts["pt"] = map[string]string{
		KeyAppTitle:          "Proteus",
		KeyUntitled:          "Sem título",
		KeyFile:              "Arquivo",
		KeyTrack:             "Faixa",
		KeyNewWindow:         "Nova Janela",
		KeyOpenProject:       "Abrir Projeto...",
		KeySave:              "Salvar",
		KeySaveAs:            "Salvar Como...",
		KeySaveIntoFolder:    "Salvar na Pasta...",
		KeyImportMedia:       "Importar Mídia...",
		KeyReveal:            "Mostrar Pasta do Projeto",
		KeyPreferences:       "Preferências...",
		KeyAddTrack:          "Adicionar Faixa",
		KeyRemoveTrack:       "Remover Faixa",
		KeyNoTracks:          "Nenhuma faixa ainda. Use Faixa > Adicionar Faixa ou Arquivo > Importar Mídia.",
		KeyNotSaved:          "Não salvo",
		KeyProjectSaved:      "Projeto salvo",
		KeyProjectLoaded:     "Projeto carregado",
		KeyNoProjectFound:    "Nenhum projeto no local selecionado",
		KeyLanguage:          "Idioma",
		KeyDefaultName:       "Nome Padrão do Projeto",
		KeyCancel:            "Cancelar",
		KeySettingsSaved:     "Configurações salvas",
		KeyErrorRevealing:    "Erro ao abrir a pasta do projeto",
		KeyTrackFilesFormat:  "Faixa %d (%d arquivos)",
		KeyRestartForLangMsg: "O idioma vale para as janelas abertas a partir de agora.",
	}
}
