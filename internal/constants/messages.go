package constants

// 面向前端的提示信息（土耳其语）

// 认证相关
const (
	MsgUnauthorized        = "Oturum bulunamadı"
	MsgInvalidToken        = "Geçersiz veya süresi dolmuş oturum"
	MsgInvalidCredentials  = "Kullanıcı bulunamadı veya şifre hatalı."
	MsgLoginFieldsRequired = "E-posta veya kullanıcı adı ve şifre zorunludur."
	MsgAccountDisabled     = "Hesap devre dışı"
	MsgEmailExists         = "Bu e-posta ile kayıtlı kullanıcı var"
	MsgUsernameExists      = "Bu kullanıcı adı ile kayıtlı kullanıcı var"
	MsgUsernameTaken       = "Bu kullanıcı adı başka bir kullanıcıda var"
	MsgAdminExists         = "Bu email/username zaten kullanılıyor"
	MsgInvalidBirthDate    = "Doğum tarihi GG/AA/YYYY biçiminde olmalı"
	MsgTooManyRequests     = "Çok fazla istek, lütfen daha sonra tekrar deneyin"
	MsgLoginSuccess        = "Giriş başarılı"
	MsgRegisterSuccess     = "Kayıt başarılı"
	MsgLogoutSuccess       = "Çıkış yapıldı"
)

// 兑换相关
const (
	MsgPurchaseFieldsRequired = "Kullanıcı, beden ve renk zorunlu"
	MsgInvalidQuantity        = "Adet pozitif bir sayı olmalı"
	MsgProductNotFound        = "Ürün bulunamadı"
	MsgVariantNotFound        = "Varyant bulunamadı"
	MsgInsufficientStock      = "Yeterli stok yok"
	MsgUserNotFound           = "Kullanıcı bulunamadı"
	MsgInsufficientBalance    = "Yetersiz puan"
	MsgPurchaseFailed         = "Satın alma işlemi sırasında hata oluştu"
	MsgPurchaseBusy           = "Ürün aynı anda güncellendi, lütfen tekrar deneyin"
	MsgDuplicateVariant       = "Aynı beden ve renk birden fazla tanımlanamaz"
)

// 资源不存在
const (
	MsgSurveyNotFound       = "Anket bulunamadı"
	MsgStoryNotFound        = "Hikaye bulunamadı"
	MsgMapTaskNotFound      = "Harita görevi bulunamadı"
	MsgNotificationNotFound = "Bildirim bulunamadı"
	MsgStoreNotFound        = "Mağaza bulunamadı"
	MsgAdminNotFound        = "Yönetici bulunamadı"
	MsgSettingNotFound      = "Ayar bulunamadı"
)

// 问卷作答
const (
	MsgSurveyNotActive      = "Anket aktif değil"
	MsgSurveyAlreadyDone    = "Bu anket zaten tamamlandı"
	MsgSurveyCompleted      = "Anket tamamlandı"
	MsgUserIDRequired       = "Kullanıcı ID zorunludur"
	MsgNotificationNoTarget = "Bildirim için hedef kullanıcı bulunamadı"
)

// 通用
const (
	MsgInvalidRequest    = "Geçersiz istek"
	MsgInvalidID         = "Geçersiz ID"
	MsgServerError       = "Sunucu hatası"
	MsgTitleRequired     = "Başlık zorunludur"
	MsgNameRequired      = "İsim zorunludur"
	MsgMessageRequired   = "Mesaj zorunludur"
	MsgAdminFieldsNeeded = "E-posta, kullanıcı adı, şifre ve isim zorunludur"
	MsgInvalidExpiresAt  = "Bitiş tarihi RFC3339 biçiminde olmalı"
	MsgInvalidDateRange  = "Tarih aralığı YYYY-AA-GG biçiminde olmalı"
	MsgConcurrentUpdate  = "Kayıt aynı anda güncellendi, lütfen tekrar deneyin"

	MsgUsersFetchFailed         = "Kullanıcılar alınırken hata oluştu"
	MsgUserFetchFailed          = "Kullanıcı alınırken hata oluştu"
	MsgUserHistoryFailed        = "Kullanıcı geçmişi alınırken hata oluştu"
	MsgUserProfileFailed        = "Kullanıcı profili alınırken hata oluştu"
	MsgUserUpdateFailed         = "Profil güncellenirken hata oluştu"
	MsgUserDeleteFailed         = "Kullanıcı silinirken hata oluştu"
	MsgSurveysFetchFailed       = "Anketler alınırken hata oluştu"
	MsgStoriesFetchFailed       = "Hikayeler alınırken hata oluştu"
	MsgStoryViewFailed          = "Hikaye görüntüleme kaydedilirken hata oluştu"
	MsgProductsFetchFailed      = "Ürünler alınırken hata oluştu"
	MsgStoresFetchFailed        = "Mağazalar alınırken hata oluştu"
	MsgMapTasksFetchFailed      = "Harita görevleri alınırken hata oluştu"
	MsgNotificationsFetchFailed = "Bildirimler alınırken hata oluştu"
	MsgNotificationSendFailed   = "Bildirim gönderilirken hata oluştu"
	MsgStatsFetchFailed         = "İstatistikler alınırken hata oluştu"
	MsgLeaderboardFailed        = "Sıralama alınırken hata oluştu"
	MsgSettingsFetchFailed      = "Ayarlar alınırken hata oluştu"
	MsgAdminsFetchFailed        = "Yöneticiler alınırken hata oluştu"
	MsgAnalyticsFetchFailed     = "Analiz verileri alınırken hata oluştu"
	MsgRedemptionsFetchFailed   = "Satın alımlar alınırken hata oluştu"
	MsgSaveFailed               = "Kayıt kaydedilirken hata oluştu"
	MsgDeleteFailed             = "Kayıt silinirken hata oluştu"
)
