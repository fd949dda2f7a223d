package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/valeriaulyamaeva/wallet-finance-app/internal/database"
	"github.com/valeriaulyamaeva/wallet-finance-app/models"
)

func CreateTransferHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var form models.TransferForm
		if err := json.NewDecoder(r.Body).Decode(&form); err != nil {
			http.Error(w, "Некорректный формат ввода", http.StatusBadRequest)
			log.Printf("Ошибка декодирования JSON: %v", err)
			return
		}

		if problems := form.Validate(); len(problems) > 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]interface{}{"errors": problems})
			return
		}

		transfer := &models.WalletTransfer{
			UserID:       CurrentUserID(r),
			FromWalletID: form.FromWalletID,
			ToWalletID:   form.ToWalletID,
			Amount:       form.Amount,
			Fees:         form.Fees,
			Date:         form.ParsedDate(),
			Description:  form.Description,
		}

		if err := database.TransferBetweenWallets(pool, transfer); err != nil {
			switch {
			case errors.Is(err, database.ErrSameWallet):
				http.Error(w, "Кошелёк-источник и кошелёк-получатель должны различаться", http.StatusBadRequest)
			case errors.Is(err, database.ErrInsufficientBalance):
				http.Error(w, "Недостаточно средств на кошельке-источнике", http.StatusBadRequest)
			case errors.Is(err, database.ErrWalletNotFound):
				http.Error(w, "Кошелёк не найден", http.StatusNotFound)
			default:
				http.Error(w, "Не удалось выполнить перевод", http.StatusInternalServerError)
				log.Printf("Ошибка перевода между кошельками: %v", err)
			}
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(transfer)
	}
}

func GetRecentTransfersHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 10
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				limit = parsed
			}
		}

		transfers, err := database.GetRecentTransfers(pool, CurrentUserID(r), limit)
		if err != nil {
			http.Error(w, "Не удалось получить переводы", http.StatusInternalServerError)
			log.Printf("Ошибка получения переводов: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transfers)
	}
}

func GetWalletTransfersHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		walletID, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Некорректный ID кошелька", http.StatusBadRequest)
			return
		}

		if _, err := database.GetWalletByID(pool, walletID, CurrentUserID(r)); err != nil {
			if errors.Is(err, database.ErrWalletNotFound) {
				http.Error(w, "Кошелёк не найден", http.StatusNotFound)
				return
			}
			http.Error(w, "Не удалось проверить кошелёк", http.StatusInternalServerError)
			return
		}

		limit := 20
		if raw := r.URL.Query().Get("limit"); raw != "" {
			if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
				limit = parsed
			}
		}

		transfers, err := database.GetWalletTransfers(pool, walletID, limit)
		if err != nil {
			http.Error(w, "Не удалось получить переводы кошелька", http.StatusInternalServerError)
			log.Printf("Ошибка получения переводов кошелька %d: %v", walletID, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(transfers)
	}
}
