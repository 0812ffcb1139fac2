package i18n

import "github.com/oscoderuz/django-shablon/internal/constants"

var messages = map[string]map[string]string{
	constants.LocaleUz: {
		"error.bad_request":                "So'rov noto'g'ri",
		"error.unauthorized":               "Avtorizatsiya talab qilinadi",
		"error.forbidden":                  "Ruxsat yo'q",
		"error.save_failed":                "Saqlab bo'lmadi",
		"error.jwt_secret_missing":         "JWT kaliti sozlanmagan",
		"error.auth_header_missing":        "Authorization sarlavhasi yo'q",
		"error.auth_header_invalid":        "Authorization sarlavhasi noto'g'ri",
		"error.token_invalid":              "Token yaroqsiz yoki muddati o'tgan",
		"error.token_revoked":              "Token bekor qilingan, qayta kiring",
		"error.user_disabled":              "Hisob bloklangan",
		"error.not_staff":                  "Hisob boshqaruv paneliga kira olmaydi",
		"error.admin_id_invalid":           "Administrator ID noto'g'ri",
		"error.admin_id_type_invalid":      "Administrator ID turi noto'g'ri",
		"error.user_id_invalid":            "Foydalanuvchi ID noto'g'ri",
		"error.user_id_type_invalid":       "Foydalanuvchi ID turi noto'g'ri",
		"error.rate_limit_unavailable":     "Cheklov xizmati mavjud emas",
		"error.rate_limited":               "Juda ko'p so'rov, %d soniyadan keyin urinib ko'ring",
		"error.login_too_many":             "Kirish urinishlari juda ko'p, %d soniyadan keyin urinib ko'ring",
		"error.captcha_required":           "Captcha kiritilishi shart",
		"error.captcha_invalid":            "Captcha noto'g'ri",
		"error.captcha_config_invalid":     "Captcha sozlamalari noto'g'ri",
		"error.captcha_verify_failed":      "Captchani tekshirib bo'lmadi",
		"error.captcha_unavailable":        "Captcha o'chirilgan",
		"error.captcha_generate_failed":    "Captcha yaratib bo'lmadi",
		"error.login_invalid":              "Login yoki parol noto'g'ri",
		"error.admin_login_invalid":        "Administrator login yoki paroli noto'g'ri",
		"error.login_failed":               "Kirishda xatolik",
		"error.logout_failed":              "Chiqishda xatolik",
		"error.register_failed":            "Ro'yxatdan o'tishda xatolik",
		"error.username_invalid":           "Foydalanuvchi nomi noto'g'ri",
		"error.username_exists":            "Bu foydalanuvchi nomi band",
		"error.email_invalid":              "Email noto'g'ri",
		"error.email_exists":               "Bu email allaqachon ro'yxatdan o'tgan",
		"error.password_mismatch":          "Parollar mos kelmadi",
		"error.password_weak":              "Parol juda oddiy",
		"error.password_old_invalid":       "Joriy parol noto'g'ri",
		"error.password_min_length":        "Parol kamida %d belgidan iborat bo'lishi kerak",
		"error.password_all_numeric":       "Parol faqat raqamlardan iborat bo'lmasligi kerak",
		"error.password_too_similar":       "Parol foydalanuvchi ma'lumotlariga juda o'xshash",
		"error.password_require_upper":     "Parolda katta harf bo'lishi kerak",
		"error.password_require_lower":     "Parolda kichik harf bo'lishi kerak",
		"error.password_require_number":    "Parolda raqam bo'lishi kerak",
		"error.password_require_special":   "Parolda maxsus belgi bo'lishi kerak",
		"error.user_not_found":             "Foydalanuvchi topilmadi",
		"error.user_fetch_failed":          "Foydalanuvchini olib bo'lmadi",
		"error.profile_update_failed":      "Profilni yangilab bo'lmadi",
		"error.profile_gender_invalid":     "Jins qiymati noto'g'ri",
		"error.profile_phone_invalid":      "Telefon raqami noto'g'ri",
		"error.profile_bio_too_long":       "Bio juda uzun",
		"error.profile_birth_invalid":      "Tug'ilgan sana noto'g'ri",
		"error.profile_field_too_long":     "Maydon qiymati juda uzun",
		"error.profile_website_invalid":    "Veb-sayt manzili noto'g'ri",
		"error.category_not_found":         "Kategoriya topilmadi",
		"error.category_id_invalid":        "Kategoriya ID noto'g'ri",
		"error.category_name_invalid":      "Kategoriya nomi noto'g'ri",
		"error.category_exists":            "Bunday nomli kategoriya mavjud",
		"error.category_fetch_failed":      "Kategoriyalarni olib bo'lmadi",
		"error.category_create_failed":     "Kategoriyani yaratib bo'lmadi",
		"error.category_update_failed":     "Kategoriyani yangilab bo'lmadi",
		"error.category_delete_failed":     "Kategoriyani o'chirib bo'lmadi",
		"error.product_not_found":          "Mahsulot topilmadi",
		"error.product_id_invalid":         "Mahsulot ID noto'g'ri",
		"error.product_name_invalid":       "Mahsulot nomi noto'g'ri",
		"error.product_slug_invalid":       "Slug noto'g'ri",
		"error.slug_exists":                "Bu slug band",
		"error.product_price_invalid":      "Narx noto'g'ri",
		"error.discount_price_invalid":     "Chegirma narxi asl narxdan past bo'lishi kerak",
		"error.product_quantity_invalid":   "Miqdor noto'g'ri",
		"error.product_status_invalid":     "Holat noto'g'ri",
		"error.product_image_required":     "Mahsulot rasmi shart",
		"error.product_short_desc_invalid": "Qisqa tavsif juda uzun",
		"error.product_fetch_failed":       "Mahsulotlarni olib bo'lmadi",
		"error.product_create_failed":      "Mahsulotni yaratib bo'lmadi",
		"error.product_update_failed":      "Mahsulotni yangilab bo'lmadi",
		"error.product_delete_failed":      "Mahsulotni o'chirib bo'lmadi",
		"error.price_range_invalid":        "Narx oralig'i noto'g'ri",
		"error.ordering_invalid":           "Saralash turi noto'g'ri",
		"error.review_not_found":           "Sharh topilmadi",
		"error.review_id_invalid":          "Sharh ID noto'g'ri",
		"error.review_ids_required":        "Sharhlar tanlanmagan",
		"error.review_not_owner":           "Bu sharh sizga tegishli emas",
		"error.review_exists":              "Siz bu mahsulotga sharh qoldirgansiz",
		"error.review_score_invalid":       "Baho 1 dan 5 gacha bo'lishi kerak",
		"error.review_body_required":       "Sharh matni shart",
		"error.review_fetch_failed":        "Sharhlarni olib bo'lmadi",
		"error.review_create_failed":       "Sharhni saqlab bo'lmadi",
		"error.review_update_failed":       "Sharhni yangilab bo'lmadi",
		"error.review_delete_failed":       "Sharhni o'chirib bo'lmadi",
		"error.rating_recompute_failed":    "Reytingni qayta hisoblab bo'lmadi",
		"error.search_unavailable":         "Qidiruv xizmati o'chirilgan",
		"error.search_reindex_failed":      "Qidiruv indeksini qayta qurib bo'lmadi",
		"error.authz_fetch_failed":         "Ruxsatlarni olib bo'lmadi",
	},
	constants.LocaleEnUS: {
		"error.bad_request":                "Invalid request",
		"error.unauthorized":               "Authentication required",
		"error.forbidden":                  "Permission denied",
		"error.save_failed":                "Save failed",
		"error.jwt_secret_missing":         "JWT secret is not configured",
		"error.auth_header_missing":        "Missing Authorization header",
		"error.auth_header_invalid":        "Invalid Authorization header",
		"error.token_invalid":              "Token is invalid or expired",
		"error.token_revoked":              "Token has been revoked, please sign in again",
		"error.user_disabled":              "Account is disabled",
		"error.not_staff":                  "Account has no admin access",
		"error.admin_id_invalid":           "Invalid admin ID",
		"error.admin_id_type_invalid":      "Invalid admin ID type",
		"error.user_id_invalid":            "Invalid user ID",
		"error.user_id_type_invalid":       "Invalid user ID type",
		"error.rate_limit_unavailable":     "Rate limiter unavailable",
		"error.rate_limited":               "Too many requests, retry in %d seconds",
		"error.login_too_many":             "Too many login attempts, retry in %d seconds",
		"error.captcha_required":           "Captcha is required",
		"error.captcha_invalid":            "Captcha is incorrect",
		"error.captcha_config_invalid":     "Captcha configuration is invalid",
		"error.captcha_verify_failed":      "Captcha verification failed",
		"error.captcha_unavailable":        "Captcha is unavailable",
		"error.captcha_generate_failed":    "Failed to generate captcha",
		"error.login_invalid":              "Invalid username or password",
		"error.admin_login_invalid":        "Invalid admin username or password",
		"error.login_failed":               "Login failed",
		"error.logout_failed":              "Logout failed",
		"error.register_failed":            "Registration failed",
		"error.username_invalid":           "Invalid username",
		"error.username_exists":            "Username is already taken",
		"error.email_invalid":              "Invalid email",
		"error.email_exists":               "Email is already registered",
		"error.password_mismatch":          "Passwords do not match",
		"error.password_weak":              "Password is too weak",
		"error.password_old_invalid":       "Current password is incorrect",
		"error.password_min_length":        "Password must be at least %d characters",
		"error.password_all_numeric":       "Password cannot be entirely numeric",
		"error.password_too_similar":       "Password is too similar to your account details",
		"error.password_require_upper":     "Password must contain an uppercase letter",
		"error.password_require_lower":     "Password must contain a lowercase letter",
		"error.password_require_number":    "Password must contain a digit",
		"error.password_require_special":   "Password must contain a special character",
		"error.user_not_found":             "User not found",
		"error.user_fetch_failed":          "Failed to fetch user",
		"error.profile_update_failed":      "Failed to update profile",
		"error.profile_gender_invalid":     "Invalid gender",
		"error.profile_phone_invalid":      "Invalid phone number",
		"error.profile_bio_too_long":       "Bio is too long",
		"error.profile_birth_invalid":      "Invalid birth date",
		"error.profile_field_too_long":     "Field value is too long",
		"error.profile_website_invalid":    "Website must be a valid http(s) URL",
		"error.category_not_found":         "Category not found",
		"error.category_id_invalid":        "Invalid category ID",
		"error.category_name_invalid":      "Invalid category name",
		"error.category_exists":            "Category name already exists",
		"error.category_fetch_failed":      "Failed to fetch categories",
		"error.category_create_failed":     "Failed to create category",
		"error.category_update_failed":     "Failed to update category",
		"error.category_delete_failed":     "Failed to delete category",
		"error.product_not_found":          "Product not found",
		"error.product_id_invalid":         "Invalid product ID",
		"error.product_name_invalid":       "Invalid product name",
		"error.product_slug_invalid":       "Invalid slug",
		"error.slug_exists":                "Slug is already in use",
		"error.product_price_invalid":      "Invalid price",
		"error.discount_price_invalid":     "Discount price must be lower than the price",
		"error.product_quantity_invalid":   "Invalid quantity",
		"error.product_status_invalid":     "Invalid status",
		"error.product_image_required":     "Product image is required",
		"error.product_short_desc_invalid": "Short description is too long",
		"error.product_fetch_failed":       "Failed to fetch products",
		"error.product_create_failed":      "Failed to create product",
		"error.product_update_failed":      "Failed to update product",
		"error.product_delete_failed":      "Failed to delete product",
		"error.price_range_invalid":        "Invalid price range",
		"error.ordering_invalid":           "Invalid ordering",
		"error.review_not_found":           "Review not found",
		"error.review_id_invalid":          "Invalid review ID",
		"error.review_ids_required":        "No reviews selected",
		"error.review_not_owner":           "Review belongs to another user",
		"error.review_exists":              "You have already reviewed this product",
		"error.review_score_invalid":       "Score must be between 1 and 5",
		"error.review_body_required":       "Review text is required",
		"error.review_fetch_failed":        "Failed to fetch reviews",
		"error.review_create_failed":       "Failed to submit review",
		"error.review_update_failed":       "Failed to update review",
		"error.review_delete_failed":       "Failed to delete review",
		"error.rating_recompute_failed":    "Failed to recompute ratings",
		"error.search_unavailable":         "Search service is disabled",
		"error.search_reindex_failed":      "Failed to rebuild search index",
		"error.authz_fetch_failed":         "Failed to fetch permissions",
	},
	constants.LocaleRu: {
		"error.bad_request":                "Некорректный запрос",
		"error.unauthorized":               "Требуется авторизация",
		"error.forbidden":                  "Доступ запрещён",
		"error.save_failed":                "Не удалось сохранить",
		"error.jwt_secret_missing":         "Не настроен ключ JWT",
		"error.auth_header_missing":        "Отсутствует заголовок Authorization",
		"error.auth_header_invalid":        "Неверный заголовок Authorization",
		"error.token_invalid":              "Токен недействителен или истёк",
		"error.token_revoked":              "Токен отозван, войдите снова",
		"error.user_disabled":              "Учётная запись отключена",
		"error.not_staff":                  "У учётной записи нет доступа к админке",
		"error.admin_id_invalid":           "Неверный ID администратора",
		"error.admin_id_type_invalid":      "Неверный тип ID администратора",
		"error.user_id_invalid":            "Неверный ID пользователя",
		"error.user_id_type_invalid":       "Неверный тип ID пользователя",
		"error.rate_limit_unavailable":     "Сервис ограничения запросов недоступен",
		"error.rate_limited":               "Слишком много запросов, повторите через %d сек.",
		"error.login_too_many":             "Слишком много попыток входа, повторите через %d сек.",
		"error.captcha_required":           "Требуется капча",
		"error.captcha_invalid":            "Неверная капча",
		"error.captcha_config_invalid":     "Неверная конфигурация капчи",
		"error.captcha_verify_failed":      "Не удалось проверить капчу",
		"error.captcha_unavailable":        "Капча недоступна",
		"error.captcha_generate_failed":    "Не удалось создать капчу",
		"error.login_invalid":              "Неверное имя пользователя или пароль",
		"error.admin_login_invalid":        "Неверный логин или пароль администратора",
		"error.login_failed":               "Ошибка входа",
		"error.logout_failed":              "Ошибка выхода",
		"error.register_failed":            "Ошибка регистрации",
		"error.username_invalid":           "Недопустимое имя пользователя",
		"error.username_exists":            "Имя пользователя уже занято",
		"error.email_invalid":              "Некорректный email",
		"error.email_exists":               "Email уже зарегистрирован",
		"error.password_mismatch":          "Пароли не совпадают",
		"error.password_weak":              "Слишком простой пароль",
		"error.password_old_invalid":       "Текущий пароль неверен",
		"error.password_min_length":        "Пароль должен содержать не менее %d символов",
		"error.password_all_numeric":       "Пароль не может состоять только из цифр",
		"error.password_too_similar":       "Пароль слишком похож на данные учётной записи",
		"error.password_require_upper":     "Пароль должен содержать заглавную букву",
		"error.password_require_lower":     "Пароль должен содержать строчную букву",
		"error.password_require_number":    "Пароль должен содержать цифру",
		"error.password_require_special":   "Пароль должен содержать спецсимвол",
		"error.user_not_found":             "Пользователь не найден",
		"error.user_fetch_failed":          "Не удалось получить пользователя",
		"error.profile_update_failed":      "Не удалось обновить профиль",
		"error.profile_gender_invalid":     "Некорректный пол",
		"error.profile_phone_invalid":      "Некорректный номер телефона",
		"error.profile_bio_too_long":       "Слишком длинное описание",
		"error.profile_birth_invalid":      "Некорректная дата рождения",
		"error.profile_field_too_long":     "Слишком длинное значение поля",
		"error.profile_website_invalid":    "Некорректный адрес сайта",
		"error.category_not_found":         "Категория не найдена",
		"error.category_id_invalid":        "Неверный ID категории",
		"error.category_name_invalid":      "Некорректное название категории",
		"error.category_exists":            "Категория с таким названием уже существует",
		"error.category_fetch_failed":      "Не удалось получить категории",
		"error.category_create_failed":     "Не удалось создать категорию",
		"error.category_update_failed":     "Не удалось обновить категорию",
		"error.category_delete_failed":     "Не удалось удалить категорию",
		"error.product_not_found":          "Товар не найден",
		"error.product_id_invalid":         "Неверный ID товара",
		"error.product_name_invalid":       "Некорректное название товара",
		"error.product_slug_invalid":       "Некорректный slug",
		"error.slug_exists":                "Такой slug уже используется",
		"error.product_price_invalid":      "Некорректная цена",
		"error.discount_price_invalid":     "Цена со скидкой должна быть ниже цены",
		"error.product_quantity_invalid":   "Некорректное количество",
		"error.product_status_invalid":     "Некорректный статус",
		"error.product_image_required":     "Требуется изображение товара",
		"error.product_short_desc_invalid": "Слишком длинное краткое описание",
		"error.product_fetch_failed":       "Не удалось получить товары",
		"error.product_create_failed":      "Не удалось создать товар",
		"error.product_update_failed":      "Не удалось обновить товар",
		"error.product_delete_failed":      "Не удалось удалить товар",
		"error.price_range_invalid":        "Некорректный диапазон цен",
		"error.ordering_invalid":           "Некорректная сортировка",
		"error.review_not_found":           "Отзыв не найден",
		"error.review_id_invalid":          "Неверный ID отзыва",
		"error.review_ids_required":        "Не выбраны отзывы",
		"error.review_not_owner":           "Отзыв принадлежит другому пользователю",
		"error.review_exists":              "Вы уже оставили отзыв на этот товар",
		"error.review_score_invalid":       "Оценка должна быть от 1 до 5",
		"error.review_body_required":       "Требуется текст отзыва",
		"error.review_fetch_failed":        "Не удалось получить отзывы",
		"error.review_create_failed":       "Не удалось отправить отзыв",
		"error.review_update_failed":       "Не удалось обновить отзыв",
		"error.review_delete_failed":       "Не удалось удалить отзыв",
		"error.rating_recompute_failed":    "Не удалось пересчитать рейтинги",
		"error.search_unavailable":         "Сервис поиска отключён",
		"error.search_reindex_failed":      "Не удалось перестроить поисковый индекс",
		"error.authz_fetch_failed":         "Не удалось получить права доступа",
	},
}
