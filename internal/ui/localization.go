package ui

import (
	"fmt"
	"strings"

	"github.com/jeandeaual/go-locale"
)

// Localization manages UI text translations
type Localization struct {
	currentLanguage string
	texts           map[string]map[string]string
}

// Text keys for localization
const (
	KeyAppTitle  = "app_title"
	KeyTagline   = "tagline"
	KeySettings  = "settings"
	KeyLanguage  = "language"
	KeySave      = "save"
	KeyCancel    = "cancel"
	KeySuccess   = "success"
	KeyError     = "error"
	KeyRetry     = "retry"
	KeyBack      = "back"
	KeyLoading   = "loading"
	KeyRefresh   = "refresh"
	KeyLogout    = "logout"
	KeyFile      = "file"
	KeyAPIServer = "api_server"
	KeyAutoPlay  = "auto_play"

	KeySettingsSaved   = "settings_saved"
	KeyRestartRequired = "restart_required"

	KeyWelcomeBack     = "welcome_back"
	KeySignInSubtitle  = "sign_in_subtitle"
	KeyEmail           = "email"
	KeyPassword        = "password"
	KeySignIn          = "sign_in"
	KeyNoAccount       = "no_account"
	KeyCreateAccount   = "create_account"
	KeyLoginSuccessful = "login_successful"
	KeyLoginFailed     = "login_failed"
	KeyGenericError    = "generic_error"

	KeyJoinUs             = "join_us"
	KeyJoinSubtitle       = "join_subtitle"
	KeyFullName           = "full_name"
	KeyAddPhoto           = "add_photo"
	KeyHaveAccount        = "have_account"
	KeyRegisterSuccessful = "register_successful"
	KeyRegisterFailed     = "register_failed"

	KeyCreatePost        = "create_post"
	KeyWhatsOnYourMind   = "whats_on_your_mind"
	KeyPost              = "post"
	KeyRemovePhoto       = "remove_photo"
	KeyPostCreated       = "post_created"
	KeyPostFailed        = "post_failed"
	KeyNetworkError      = "network_error"
	KeyImageTooLarge     = "image_too_large"
	KeyShrinkOffer       = "shrink_offer"
	KeyShrinking         = "shrinking"
	KeyShrinkFailed      = "shrink_failed"
	KeyImageReadFailed   = "image_read_failed"
	KeySubmissionPending = "submission_pending"

	KeyStories      = "stories"
	KeyNoPosts      = "no_posts"
	KeyFeedFailed   = "feed_failed"
	KeyOfflineFeed  = "offline_feed"
	KeyLikes        = "likes"
	KeyComments     = "comments"
	KeyAddComment   = "add_comment"
	KeyComment      = "comment"
	KeyCopied       = "copied"
	KeyActionFailed = "action_failed"

	KeyProfile         = "profile"
	KeyPosts           = "posts"
	KeyFollowers       = "followers"
	KeyFollowing       = "following"
	KeyNoPostsYet      = "no_posts_yet"
	KeyShareFirst      = "share_first"
	KeyProfileFailed   = "profile_failed"
	KeyNoProfile       = "no_profile"
	KeyLoadingProfile  = "loading_profile"
	KeyUnknownLanguage = "unknown_language"
)

// Supported UI languages
const (
	LangSystem = "system"
	LangEN     = "en"
	LangRU     = "ru"
	LangPT     = "pt"
)

// NewLocalization creates a new localization manager
func NewLocalization() *Localization {
	l := &Localization{
		currentLanguage: LangEN,
		texts:           make(map[string]map[string]string),
	}

	l.initializeTexts()
	return l
}

// SetLanguage sets the current language. "system" picks the first supported
// language from the OS locale list and falls back to English.
func (l *Localization) SetLanguage(lang string) {
	if lang == LangSystem {
		lang = l.systemLanguage()
	}

	if _, exists := l.texts[lang]; exists {
		l.currentLanguage = lang
	}
}

func (l *Localization) systemLanguage() string {
	locales, err := locale.GetLocales()
	if err != nil {
		return LangEN
	}
	return matchLanguage(locales, l.texts)
}

// matchLanguage returns the first locale whose base language has texts
func matchLanguage(locales []string, texts map[string]map[string]string) string {
	for _, loc := range locales {
		base := strings.ToLower(loc)
		if i := strings.IndexAny(base, "-_"); i > 0 {
			base = base[:i]
		}
		if _, ok := texts[base]; ok {
			return base
		}
	}
	return LangEN
}

// GetText returns localized text for the given key
func (l *Localization) GetText(key string) string {
	if texts, exists := l.texts[l.currentLanguage]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Fallback to English
	if texts, exists := l.texts[LangEN]; exists {
		if text, found := texts[key]; found {
			return text
		}
	}

	// Final fallback - return key itself
	return key
}

// Format returns the localized text for key with args applied
func (l *Localization) Format(key string, args ...any) string {
	return fmt.Sprintf(l.GetText(key), args...)
}

// GetCurrentLanguage returns the current language code
func (l *Localization) GetCurrentLanguage() string {
	return l.currentLanguage
}

// GetAvailableLanguages returns map of available languages with their display names
func (l *Localization) GetAvailableLanguages() map[string]string {
	return map[string]string{
		LangEN: "English",
		LangRU: "Русский",
		LangPT: "Português",
	}
}

// initializeTexts initializes all text translations
func (l *Localization) initializeTexts() {
	// English texts
	l.texts[LangEN] = map[string]string{
		KeyAppTitle:  "Scrolly",
		KeyTagline:   "Explore. Share. Enjoy.",
		KeySettings:  "Settings",
		KeyLanguage:  "Language",
		KeySave:      "Save",
		KeyCancel:    "Cancel",
		KeySuccess:   "Success",
		KeyError:     "Error",
		KeyRetry:     "Retry",
		KeyBack:      "Back",
		KeyLoading:   "Loading...",
		KeyRefresh:   "Refresh",
		KeyLogout:    "Log out",
		KeyFile:      "File",
		KeyAPIServer: "API server",
		KeyAutoPlay:  "Play stories automatically",

		KeySettingsSaved:   "Settings saved successfully!",
		KeyRestartRequired: "The new API server is used after restart.",

		KeyWelcomeBack:     "Welcome Back",
		KeySignInSubtitle:  "Sign in to continue your journey",
		KeyEmail:           "Email address",
		KeyPassword:        "Password",
		KeySignIn:          "Sign In",
		KeyNoAccount:       "Don't have an account?",
		KeyCreateAccount:   "Create Account",
		KeyLoginSuccessful: "Login successful!",
		KeyLoginFailed:     "Failed to login.",
		KeyGenericError:    "An error occurred. Please try again.",

		KeyJoinUs:             "Join Us Today",
		KeyJoinSubtitle:       "Create your account and start your journey",
		KeyFullName:           "Full Name",
		KeyAddPhoto:           "Add Photo",
		KeyHaveAccount:        "Already have an account?",
		KeyRegisterSuccessful: "User registered successfully!",
		KeyRegisterFailed:     "Failed to register.",

		KeyCreatePost:        "Create Post",
		KeyWhatsOnYourMind:   "What's on your mind?",
		KeyPost:              "Post",
		KeyRemovePhoto:       "Remove photo",
		KeyPostCreated:       "Post created successfully!",
		KeyPostFailed:        "Failed to create post: %s",
		KeyNetworkError:      "Network error: %s",
		KeyImageTooLarge:     "Image Too Large",
		KeyShrinkOffer:       "%s\n\nShrink it to fit?",
		KeyShrinking:         "Shrinking image...",
		KeyShrinkFailed:      "Could not shrink the image: %s",
		KeyImageReadFailed:   "Could not read the image: %s",
		KeySubmissionPending: "Posting...",

		KeyStories:      "Stories",
		KeyNoPosts:      "No posts yet. Pull to refresh.",
		KeyFeedFailed:   "Failed to load feed: %s",
		KeyOfflineFeed:  "Showing saved feed",
		KeyLikes:        "%d likes",
		KeyComments:     "%d comments",
		KeyAddComment:   "Add a comment",
		KeyComment:      "Comment",
		KeyCopied:       "Copied to clipboard",
		KeyActionFailed: "Action failed: %s",

		KeyProfile:         "Profile",
		KeyPosts:           "Posts",
		KeyFollowers:       "Followers",
		KeyFollowing:       "Following",
		KeyNoPostsYet:      "No posts yet",
		KeyShareFirst:      "Share your first moment!",
		KeyProfileFailed:   "Failed to load profile data. Please try again.",
		KeyNoProfile:       "No user profile found. Please login again.",
		KeyLoadingProfile:  "Loading Profile...",
		KeyUnknownLanguage: "Unknown language",
	}

	// Russian texts
	l.texts[LangRU] = map[string]string{
		KeyAppTitle:  "Scrolly",
		KeyTagline:   "Смотри. Делись. Наслаждайся.",
		KeySettings:  "Настройки",
		KeyLanguage:  "Язык",
		KeySave:      "Сохранить",
		KeyCancel:    "Отмена",
		KeySuccess:   "Готово",
		KeyError:     "Ошибка",
		KeyRetry:     "Повторить",
		KeyBack:      "Назад",
		KeyLoading:   "Загрузка...",
		KeyRefresh:   "Обновить",
		KeyLogout:    "Выйти",
		KeyFile:      "Файл",
		KeyAPIServer: "Сервер API",
		KeyAutoPlay:  "Автовоспроизведение историй",

		KeySettingsSaved:   "Настройки успешно сохранены!",
		KeyRestartRequired: "Новый сервер API будет использован после перезапуска.",

		KeyWelcomeBack:     "С возвращением",
		KeySignInSubtitle:  "Войдите, чтобы продолжить",
		KeyEmail:           "Электронная почта",
		KeyPassword:        "Пароль",
		KeySignIn:          "Войти",
		KeyNoAccount:       "Нет аккаунта?",
		KeyCreateAccount:   "Создать аккаунт",
		KeyLoginSuccessful: "Вход выполнен!",
		KeyLoginFailed:     "Не удалось войти.",
		KeyGenericError:    "Произошла ошибка. Попробуйте ещё раз.",

		KeyJoinUs:             "Присоединяйтесь",
		KeyJoinSubtitle:       "Создайте аккаунт и начните",
		KeyFullName:           "Полное имя",
		KeyAddPhoto:           "Добавить фото",
		KeyHaveAccount:        "Уже есть аккаунт?",
		KeyRegisterSuccessful: "Пользователь зарегистрирован!",
		KeyRegisterFailed:     "Не удалось зарегистрироваться.",

		KeyCreatePost:        "Новая публикация",
		KeyWhatsOnYourMind:   "О чём вы думаете?",
		KeyPost:              "Опубликовать",
		KeyRemovePhoto:       "Убрать фото",
		KeyPostCreated:       "Публикация создана!",
		KeyPostFailed:        "Не удалось создать публикацию: %s",
		KeyNetworkError:      "Ошибка сети: %s",
		KeyImageTooLarge:     "Изображение слишком большое",
		KeyShrinkOffer:       "%s\n\nУменьшить его?",
		KeyShrinking:         "Уменьшение изображения...",
		KeyShrinkFailed:      "Не удалось уменьшить изображение: %s",
		KeyImageReadFailed:   "Не удалось прочитать изображение: %s",
		KeySubmissionPending: "Публикация...",

		KeyStories:      "Истории",
		KeyNoPosts:      "Публикаций пока нет. Потяните, чтобы обновить.",
		KeyFeedFailed:   "Не удалось загрузить ленту: %s",
		KeyOfflineFeed:  "Показана сохранённая лента",
		KeyLikes:        "Отметок: %d",
		KeyComments:     "Комментариев: %d",
		KeyAddComment:   "Добавить комментарий",
		KeyComment:      "Комментарий",
		KeyCopied:       "Скопировано в буфер обмена",
		KeyActionFailed: "Действие не выполнено: %s",

		KeyProfile:         "Профиль",
		KeyPosts:           "Публикации",
		KeyFollowers:       "Подписчики",
		KeyFollowing:       "Подписки",
		KeyNoPostsYet:      "Публикаций пока нет",
		KeyShareFirst:      "Поделитесь первым моментом!",
		KeyProfileFailed:   "Не удалось загрузить профиль. Попробуйте ещё раз.",
		KeyNoProfile:       "Профиль не найден. Войдите снова.",
		KeyLoadingProfile:  "Загрузка профиля...",
		KeyUnknownLanguage: "Неизвестный язык",
	}

	// Portuguese texts
	l.texts[LangPT] = map[string]string{
		KeyAppTitle:  "Scrolly",
		KeyTagline:   "Explore. Compartilhe. Aproveite.",
		KeySettings:  "Configurações",
		KeyLanguage:  "Idioma",
		KeySave:      "Salvar",
		KeyCancel:    "Cancelar",
		KeySuccess:   "Sucesso",
		KeyError:     "Erro",
		KeyRetry:     "Tentar novamente",
		KeyBack:      "Voltar",
		KeyLoading:   "Carregando...",
		KeyRefresh:   "Atualizar",
		KeyLogout:    "Sair",
		KeyFile:      "Arquivo",
		KeyAPIServer: "Servidor da API",
		KeyAutoPlay:  "Reproduzir stories automaticamente",

		KeySettingsSaved:   "Configurações salvas com sucesso!",
		KeyRestartRequired: "O novo servidor da API será usado após reiniciar.",

		KeyWelcomeBack:     "Bem-vindo de volta",
		KeySignInSubtitle:  "Entre para continuar sua jornada",
		KeyEmail:           "Endereço de e-mail",
		KeyPassword:        "Senha",
		KeySignIn:          "Entrar",
		KeyNoAccount:       "Não tem uma conta?",
		KeyCreateAccount:   "Criar conta",
		KeyLoginSuccessful: "Login realizado!",
		KeyLoginFailed:     "Falha ao entrar.",
		KeyGenericError:    "Ocorreu um erro. Tente novamente.",

		KeyJoinUs:             "Junte-se a nós",
		KeyJoinSubtitle:       "Crie sua conta e comece sua jornada",
		KeyFullName:           "Nome completo",
		KeyAddPhoto:           "Adicionar foto",
		KeyHaveAccount:        "Já tem uma conta?",
		KeyRegisterSuccessful: "Usuário registrado com sucesso!",
		KeyRegisterFailed:     "Falha ao registrar.",

		KeyCreatePost:        "Criar publicação",
		KeyWhatsOnYourMind:   "No que você está pensando?",
		KeyPost:              "Publicar",
		KeyRemovePhoto:       "Remover foto",
		KeyPostCreated:       "Publicação criada com sucesso!",
		KeyPostFailed:        "Falha ao criar publicação: %s",
		KeyNetworkError:      "Erro de rede: %s",
		KeyImageTooLarge:     "Imagem muito grande",
		KeyShrinkOffer:       "%s\n\nReduzir para caber?",
		KeyShrinking:         "Reduzindo imagem...",
		KeyShrinkFailed:      "Não foi possível reduzir a imagem: %s",
		KeyImageReadFailed:   "Não foi possível ler a imagem: %s",
		KeySubmissionPending: "Publicando...",

		KeyStories:      "Stories",
		KeyNoPosts:      "Nenhuma publicação ainda. Puxe para atualizar.",
		KeyFeedFailed:   "Falha ao carregar o feed: %s",
		KeyOfflineFeed:  "Mostrando feed salvo",
		KeyLikes:        "%d curtidas",
		KeyComments:     "%d comentários",
		KeyAddComment:   "Adicionar comentário",
		KeyComment:      "Comentar",
		KeyCopied:       "Copiado para a área de transferência",
		KeyActionFailed: "Ação falhou: %s",

		KeyProfile:         "Perfil",
		KeyPosts:           "Publicações",
		KeyFollowers:       "Seguidores",
		KeyFollowing:       "Seguindo",
		KeyNoPostsYet:      "Nenhuma publicação ainda",
		KeyShareFirst:      "Compartilhe seu primeiro momento!",
		KeyProfileFailed:   "Falha ao carregar o perfil. Tente novamente.",
		KeyNoProfile:       "Perfil não encontrado. Entre novamente.",
		KeyLoadingProfile:  "Carregando perfil...",
		KeyUnknownLanguage: "Idioma desconhecido",
	}
}
