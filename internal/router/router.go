package router

import (
	"github.com/gin-gonic/gin"

	"locality_dev_v1_202609/internal/controller"
	"locality_dev_v1_202609/internal/middleware"
	"locality_dev_v1_202609/internal/model"
)

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine,
	authCtrl *controller.AuthController,
	searchCtrl *controller.SearchController,
	wishlistCtrl *controller.WishlistController,
	businessCtrl *controller.BusinessController,
	productCtrl *controller.ProductController,
	uploadCtrl *controller.UploadController) {
	api := r.Group("/api")
	{
		// auth 鉴权组
		auth := api.Group("/auth")
		{
			auth.POST("/signup", authCtrl.Signup)
			auth.POST("/signin", authCtrl.Signin)
			auth.POST("/refresh", authCtrl.RefreshToken)
			auth.GET("/profile", middleware.JWTAuth(), authCtrl.GetProfile)
			auth.PUT("/password", middleware.JWTAuth(), authCtrl.UpdatePassword)
		}

		// 商城检索，无需登录
		api.POST("/search", searchCtrl.Query)

		// 收藏夹，登录即可
		wishlist := api.Group("/wishlist", middleware.JWTAuth())
		{
			wishlist.GET("", wishlistCtrl.List)
			wishlist.POST("", wishlistCtrl.Add)
			wishlist.DELETE("/:object_id", wishlistCtrl.Remove)
		}

		// 商家控制台，要求商家或管理员角色
		dashboard := api.Group("/dashboard",
			middleware.JWTAuth(),
			middleware.RequireRole(model.RoleBusiness, model.RoleAdmin),
		)
		{
			dashboard.GET("/business", businessCtrl.GetBusiness)
			dashboard.GET("/homepages", businessCtrl.GetHomepages)
			dashboard.PUT("/homepages", businessCtrl.UpdateHomepages)
			dashboard.GET("/settings", businessCtrl.GetUploadSettings)
			dashboard.PUT("/settings", businessCtrl.UpdateUploadSettings)
			dashboard.PUT("/logo", businessCtrl.UpdateLogo)
			dashboard.PUT("/departments", businessCtrl.UpdateDepartments)

			products := dashboard.Group("/products")
			{
				products.GET("", productCtrl.ListProducts)
				products.POST("", productCtrl.CreateProduct)
				products.GET("/:id", productCtrl.GetProduct)
				products.PUT("/:id", productCtrl.UpdateProduct)
				products.DELETE("/:id", productCtrl.DeleteProduct)
			}

			upload := dashboard.Group("/upload")
			{
				upload.POST("/etsy", uploadCtrl.TriggerEtsy)
				upload.POST("/shopify", uploadCtrl.TriggerShopify)
				upload.GET("/jobs/:id", uploadCtrl.GetJob)
				upload.GET("/latest", uploadCtrl.GetLatestJob)
			}
		}
	}
}
